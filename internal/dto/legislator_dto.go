package dto

import "policy-compass-be/pkg/legislator"

type LookupRequest struct {
	Name string `json:"name" validate:"required"`
}

type LookupResponse struct {
	Found   bool                `json:"found"`
	Profile *legislator.Profile `json:"profile,omitempty"`
}
