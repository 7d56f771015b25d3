package dto

import "policy-compass-be/pkg/civic"

type SimulateRequest struct {
	DocumentName  string `json:"document_name" validate:"required"`
	ZipCode       string `json:"zip_code" validate:"required"`
	HouseholdSize int    `json:"household_size" validate:"min=1"`
	Income        int    `json:"income"`
	Occupation    string `json:"occupation"`
	Insurance     string `json:"insurance"`
	Housing       string `json:"housing"`
}

type SimulateResponse struct {
	Impact *civic.Impact `json:"impact"`
}
