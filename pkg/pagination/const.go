package pagination

// PageDefaultSize applies when a request does not specify a page size.
const PageDefaultSize = 100

// PageMaxSize caps the page size a client can ask for.
const PageMaxSize = 10_000
