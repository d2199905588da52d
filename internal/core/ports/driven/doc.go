// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CodeSearcher: Fetches one page of code-search results
//   - BlobFetcher: Fetches the raw bytes of one matched file
//   - BlobCacheStore: Durable revision-keyed download cache
//   - TokenProvider: Resolves the API credential
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PageCacheStore: Search-page cache. Without it every page hits the network.
//   - RunStore: Mirror-run history. Without it runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
