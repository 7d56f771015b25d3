package dto

import "policy-compass-be/pkg/chains"

type DecodeRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
	Query        string `json:"query" validate:"required"`
	ELI5         bool   `json:"eli5"`
}

type DecodeResponse struct {
	Answer string `json:"answer"`
}

type CompareRequest struct {
	DocumentA string `json:"document_a" validate:"required"`
	DocumentB string `json:"document_b" validate:"required"`
}

type CompareResponse struct {
	Comparison string `json:"comparison"`
}

type QuizRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}

type QuizResponse struct {
	Questions []chains.QuizQuestion `json:"questions"`
}

type EnsembleRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
	Query        string `json:"query" validate:"required"`
}
