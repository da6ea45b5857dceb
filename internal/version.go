package internal

// Version is the speakabc release version
const Version = "0.3.0"
