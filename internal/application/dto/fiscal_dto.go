package dto

import "time"

// CreateSequenceRequest body para POST /api/fiscal-sequences.
type CreateSequenceRequest struct {
	DocumentType string    `json:"document_type"` // 01, 02, 03, 04
	Series       string    `json:"series"`        // B | E
	RangeStart   int64     `json:"range_start"`
	RangeEnd     int64     `json:"range_end"`
	Expiry       time.Time `json:"expiry"`
}

// SequenceResponse secuencia NCF.
type SequenceResponse struct {
	ID           string `json:"id"`
	DocumentType string `json:"document_type"`
	TypeName     string `json:"type_name"`
	Prefix       string `json:"prefix"`
	Counter      int64  `json:"counter"`
	RangeStart   int64  `json:"range_start"`
	RangeEnd     int64  `json:"range_end"`
	Remaining    int64  `json:"remaining"`
	Expiry       string `json:"expiry"`
	Active       bool   `json:"active"`
}

// ValidateFiscalNumberRequest body para POST /api/fiscal-numbers/validate.
type ValidateFiscalNumberRequest struct {
	Number       string `json:"number"`
	DocumentType string `json:"document_type,omitempty"`
	Last         string `json:"last,omitempty"`
}

// ValidateFiscalNumberResponse resultado de la validación.
type ValidateFiscalNumberResponse struct {
	Number       string `json:"number"`
	Valid        bool   `json:"valid"`
	DocumentType string `json:"document_type,omitempty"`
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
}
