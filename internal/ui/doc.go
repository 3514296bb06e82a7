package ui

// Package ui contains the Fyne-based desktop user interface. It wires the Play,
// News and Settings views to the launch worker, applies worker events on the
// UI thread and keeps navigation locked while a launch is in flight. All UI
// strings are localized via Localization.
