package model

// Package model defines domain data structures shared across the launcher:
// launch requests, installation progress and launch status enums. Structures
// are plain values so they can cross the worker/UI boundary by copy.
