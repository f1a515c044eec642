// Package config finds and decodes copper configuration files and turns
// them into per-cop option sets.
//
// Two layouts are understood: `.copper.toml`, with one table per cop
// (["Rails/Date"]), and RuboCop's `.rubocop.yml`. Both may carry an AllCops
// section with DisabledByDefault and Exclude. When a directory holds both,
// the TOML file wins.
package config
