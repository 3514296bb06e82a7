package platform

// Package platform contains OS integration: filesystem helpers, opening
// folders and files in the system file manager, and the placeholder images
// created on first run.
