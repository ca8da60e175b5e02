// Package google provides shared infrastructure for Google API connectors:
// service-account authentication, service construction, error
// classification and request rate limiting.
//
// # Authentication
//
// The Drive connector authenticates as a service account using its JSON key
// file. Share the indexed folder with the service account's email address
// to grant it read access.
//
// Scopes requested:
//   - https://www.googleapis.com/auth/drive.readonly
package google
