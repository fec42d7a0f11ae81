package model

type Clinic struct {
	Base
	Name        string `db:"name" json:"name"`
	Address     string `db:"address" json:"address,omitempty"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Email       string `db:"email" json:"email,omitempty"`
	Description string `db:"description" json:"description,omitempty"`
	Status      string `db:"status" json:"status"`
}

type UpdateClinicRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}
