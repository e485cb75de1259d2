// Package commands defines the catalog CLI, a text front end for the NFT
// marketplace data layer.
//
// Commands
//
//   - collections  List collections, optionally re-sorted
//   - refresh      Reload collections and print each state transition
//   - collection   Show one collection with its author and items
//   - author       Show a user by id
//   - nft          Show items by id
//   - profile      Show the current profile
//   - like         Toggle likes on items
//   - my-nfts      List the profile's items
//   - order        Show the cart
//   - currencies   List payment currencies
//   - pay          Pay for the cart
//   - token        Issue and store an API token
//
// The root command loads configuration and builds the HTTP client, the
// settings store and the data providers before any subcommand runs.
package commands
