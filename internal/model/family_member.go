package model

// FamilyMember is a person on the dashboard. Color is a display hint used
// by the widgets and carries no meaning beyond presentation.
type FamilyMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
