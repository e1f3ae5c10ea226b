package models

// Requests for the public HTTP endpoints.

type HistoryRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,ticker"`
}

// PredictRequest carries optional model parameters as pointers so an
// explicit zero (d=0 is a valid differencing degree) is distinguishable
// from an omitted field. Unset fields fall back to configured defaults.
type PredictRequest struct {
	Symbol  string `param:"symbol" json:"symbol" validate:"required,ticker"`
	P       *int   `query:"p" json:"p,omitempty" validate:"omitempty,gte=1,lte=30"`
	D       *int   `query:"d" json:"d,omitempty" validate:"omitempty,gte=0,lte=2"`
	Q       *int   `query:"q" json:"q,omitempty" validate:"omitempty,gte=0"`
	Horizon *int   `query:"horizon" json:"horizon,omitempty" validate:"omitempty,gte=1,lte=60"`
}

type NewsRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"omitempty,ticker"`
	Limit  int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
}
