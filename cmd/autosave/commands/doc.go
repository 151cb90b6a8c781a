// Package commands defines the autosave CLI.
//
// Commands
//
//   - schedule create   Run the create-schedule wizard against the savings API
//
// The root command reads --api and --token (or AUTOSAVE_API_URL and
// AUTOSAVE_TOKEN) and builds the savings API client before any subcommand runs.
package commands
