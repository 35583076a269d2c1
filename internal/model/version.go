package model

// Version is overridden at build time with -ldflags "-X treepaths/internal/model.Version=..."
var Version = "0.3.0"
