// Package config holds the field, run and client rendering parameters.
// Gameplay balance lives in object.Tuning and is supplied per game.
package config

import "time"

// Field dimensions in logical units. Rendering scales to fit the terminal.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Run
const (
	RunDuration = 60 * time.Second
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160
	MaxTermHeight         = 60
	PlayerBlinkFrequency  = 10.0 // Hz
)
