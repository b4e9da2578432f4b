package settings

type LoadScenarioRequest struct {
	Name string `json:"name" binding:"required"`
}
