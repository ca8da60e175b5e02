// Package connectors provides the remote repository implementations, one
// per source type, and the factory that selects one from settings.
//
//   - sharepoint: a SharePoint site's document library via Microsoft Graph
//   - filesystem: a local directory tree, optionally watched with fsnotify
//   - github: one branch of a GitHub repository
//   - google/drive: Google Drive files visible to a service account
//
// Builders are registered with the Factory at startup.
package connectors
