// Package cli parses the command-line surface into an app.Config. Axis list
// flags accept HCL expression literals (e.g. --diffK='[10000, 37500]') and
// become typed candidate lists; malformed or unknown flags are usage errors
// carrying exit code 2.
package cli
