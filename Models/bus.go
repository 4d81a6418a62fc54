package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bus carries its derived code alongside the three fragments it is built
// from. The code is always re-derived on create and update; a client-sent
// code is ignored. Uniqueness is enforced by the index, not the generator.
type Bus struct {
	gorm.Model
	ModelPrefix    string         `json:"model_prefix" gorm:"size:2;not null"`
	ChassisNo      string         `json:"chassis_no" gorm:"size:100;not null"`
	SerialNo       string         `json:"serial_no" gorm:"size:2"`
	BusCode        string         `json:"bus_code" gorm:"size:20;not null;uniqueIndex"`
	RegistrationNo string         `json:"registration_no" gorm:"size:20"`
	SeatingLayout  string         `json:"seating_layout" gorm:"size:50"`
	Extras         datatypes.JSON `json:"extras,omitempty"`
}

type BusRequest struct {
	ModelPrefix    string         `json:"model_prefix" validate:"required,len=2"`
	ChassisNo      string         `json:"chassis_no" validate:"required"`
	SerialNo       string         `json:"serial_no" validate:"max=2"`
	RegistrationNo string         `json:"registration_no"`
	SeatingLayout  string         `json:"seating_layout"`
	Extras         datatypes.JSON `json:"extras"`
}
