package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tixmarket/pkg/randsrc"
)

func TestGenerateDealFlags(t *testing.T) {
	tests := []struct {
		name    string
		rnd     float64
		price   float64
		section string
		notes   []string
		want    []DealFlag
	}{
		{
			name:    "deep discount in lower bowl",
			rnd:     0.9,
			price:   55,
			section: "Section 101",
			notes:   []string{"Clear view"},
			want:    []DealFlag{FlagGreatDeal, FlagFantasticValue, FlagBestValue, FlagClearView},
		},
		{
			name:    "modest discount upstairs",
			rnd:     0.9,
			price:   75,
			section: "Upper Deck",
			notes:   []string{"Great seats", "Aisle access"},
			want:    []DealFlag{FlagAisleSeat},
		},
		{
			name:    "random flags fire",
			rnd:     0.1,
			price:   150,
			section: "Club Level",
			want:    []DealFlag{FlagFeatured, FlagSellingFast},
		},
		{
			name:    "no flags",
			rnd:     0.9,
			price:   100,
			section: "Section 205",
			want:    []DealFlag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateDealFlags(randsrc.NewScripted(tt.rnd), tt.price, 100, tt.section, tt.notes)
			assert.Equal(t, tt.want, got)
		})
	}
}
