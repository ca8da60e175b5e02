// Package sharepoint implements a remote repository over the default
// document library of a SharePoint site, read through Microsoft Graph.
//
// The application authenticates with the OAuth2 client credentials grant
// against the tenant's Microsoft identity platform endpoint. The app
// registration needs the Sites.Read.All application permission.
//
// A listing resolves the site from its URL, then its default drive, then
// walks every folder from the drive root. Each file becomes one remote
// document whose token is its lastModifiedDateTime and whose URL is its
// webUrl. Content is downloaded from the item's /content endpoint.
//
// The package also manages Graph change subscriptions on the drive root so
// the webhook receiver is told when the library changes.
package sharepoint
