package config

import "time"

// Base application details
const AppName = "cutout"
const ConfigDirName = "cutout"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "cutout.log"

// Timeline defaults
const DefaultTotalFrames = 48
const DefaultFPS = 12
const DefaultScrubberWidth = 40
const DefaultScale = 1.0

// Editor defaults
const DefaultHistoryLimit = 100
const SystemClipboard = false

// Status bar
const MessageTimeout = 4 * time.Second
