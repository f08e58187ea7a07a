// Package config provides configuration structures and utilities for pagescout.
// It defines the scan defaults (keyword list, sub-page filters, HTTP settings),
// report preferences, and loading of the optional .pagescout YAML file.
package config
