package madshus

// priceRegions lists every region the prices field carries, in the
// order the API returns them.
var priceRegions = []string{
	"au", "at", "ca", "cz", "fr", "de", "it", "jp",
	"nl", "no", "ru", "pl", "es", "se", "ch", "gb",
}

const getPaginatedProductGridQuery = `
query GetPaginatedProductGrid($queryString: String!) {
  paginatedProductGrid(queryString: $queryString) {
    products {
      uid
      title
      display_title
      url
    }
    total
  }
}`

const getProductQuery = `
query GetProduct($url: String!, $locale: String!) {
  product(url: $url, locale: $locale) {
    url
    uid
    description
    display_title
    title
    tagline
    updated_product_specs
    prices {
      au
      at
      ca
      cz
      fr
      de
      it
      jp
      nl
      no
      ru
      pl
      es
      se
      ch
      gb
    }
    details(locale: $locale) {
      technology {
        title
        content
      }
      feature_details {
        group_title
        group {
          title
          content
        }
      }
    }
  }
}`
