package entity

// Supplier represents a vendor goods are purchased from
type Supplier struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"required,max=255"`
	ContactPerson string `json:"contact_person,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
}
