// Package app wires the Kasuwa application together: configuration,
// preferences, the API client, the entity store, the session, navigation,
// the mutation coordinator, and the terminal UI. It owns process lifecycle
// concerns like the background thread refresher; everything else lives in
// the focused packages it assembles.
package app
