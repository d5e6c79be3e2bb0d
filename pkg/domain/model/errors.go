package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrFindingNotFound   = goerr.New("finding not found")
	ErrInspectorNotFound = goerr.New("inspector not found")
)
