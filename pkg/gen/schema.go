package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davenorth/seotools/models"
)

const schemaContext = "https://schema.org"

// SchemaTypes lists the supported JSON-LD variants.
var SchemaTypes = []string{
	"Organization", "LocalBusiness", "Article", "Product", "FAQ", "BreadcrumbList",
}

type postalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

type organizationSchema struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Logo        string   `json:"logo"`
	Description string   `json:"description"`
	SameAs      []string `json:"sameAs"`
}

type localBusinessSchema struct {
	Context   string        `json:"@context"`
	Type      string        `json:"@type"`
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	Telephone string        `json:"telephone"`
	Address   postalAddress `json:"address"`
}

type person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type imageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type articlePublisher struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo imageObject `json:"logo"`
}

type articleSchema struct {
	Context       string           `json:"@context"`
	Type          string           `json:"@type"`
	Headline      string           `json:"headline"`
	Author        person           `json:"author"`
	DatePublished string           `json:"datePublished"`
	DateModified  string           `json:"dateModified"`
	Image         string           `json:"image"`
	Publisher     articlePublisher `json:"publisher"`
}

type brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
}

type productSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Brand       brand  `json:"brand"`
	Offers      offer  `json:"offers"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqSchema struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

type breadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbSchema struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	ItemListElement []breadcrumbItem `json:"itemListElement"`
}

// Schema renders the requested schema type as indented JSON-LD.
func Schema(spec *models.SchemaSpec) (string, error) {
	obj, err := buildSchema(spec)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// SchemaScriptTag wraps the rendered JSON-LD in the script element pages
// embed it with.
func SchemaScriptTag(spec *models.SchemaSpec) (string, error) {
	body, err := Schema(spec)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<script type=\"application/ld+json\">\n%s\n</script>", body), nil
}

func buildSchema(spec *models.SchemaSpec) (interface{}, error) {
	switch spec.Type {
	case "Organization":
		sameAs := spec.SocialLinks
		if sameAs == nil {
			sameAs = []string{}
		}
		return organizationSchema{
			Context: schemaContext, Type: spec.Type,
			Name: spec.Name, URL: spec.URL, Logo: spec.Logo,
			Description: spec.Description, SameAs: sameAs,
		}, nil
	case "LocalBusiness":
		return localBusinessSchema{
			Context: schemaContext, Type: spec.Type,
			Name: spec.Name, URL: spec.URL, Telephone: spec.Phone,
			Address: postalAddress{
				Type:            "PostalAddress",
				StreetAddress:   spec.Street,
				AddressLocality: spec.City,
				AddressRegion:   spec.State,
				PostalCode:      spec.Zip,
				AddressCountry:  spec.Country,
			},
		}, nil
	case "Article":
		return articleSchema{
			Context: schemaContext, Type: spec.Type,
			Headline:      spec.Headline,
			Author:        person{Type: "Person", Name: spec.Author},
			DatePublished: spec.DatePublished,
			DateModified:  spec.DateModified,
			Image:         spec.Image,
			Publisher: articlePublisher{
				Type: "Organization",
				Name: spec.PublisherName,
				Logo: imageObject{Type: "ImageObject", URL: spec.PublisherLogo},
			},
		}, nil
	case "Product":
		availability := spec.Availability
		if availability == "" {
			availability = "https://schema.org/InStock"
		}
		currency := spec.Currency
		if currency == "" {
			currency = "USD"
		}
		return productSchema{
			Context: schemaContext, Type: spec.Type,
			Name: spec.Name, Description: spec.Description, Image: spec.Image,
			Brand: brand{Type: "Brand", Name: spec.Brand},
			Offers: offer{
				Type: "Offer", Price: spec.Price,
				PriceCurrency: currency, Availability: availability,
			},
		}, nil
	case "FAQ":
		return faqSchema{
			Context: schemaContext, Type: "FAQPage",
			MainEntity: parseFAQs(spec.FAQs),
		}, nil
	case "BreadcrumbList":
		return breadcrumbSchema{
			Context: schemaContext, Type: spec.Type,
			ItemListElement: parseBreadcrumbs(spec.Breadcrumbs),
		}, nil
	default:
		return nil, fmt.Errorf("unknown schema type %q (supported: %s)",
			spec.Type, strings.Join(SchemaTypes, ", "))
	}
}

// parseFAQs splits blank-line-separated blocks; inside a block the first
// line is the question and the second the answer.
func parseFAQs(input string) []faqQuestion {
	questions := []faqQuestion{}
	for _, block := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.SplitN(block, "\n", 2)
		q := faqQuestion{Type: "Question", Name: strings.TrimSpace(lines[0])}
		q.AcceptedAnswer = faqAnswer{Type: "Answer"}
		if len(lines) > 1 {
			q.AcceptedAnswer.Text = strings.TrimSpace(lines[1])
		}
		questions = append(questions, q)
	}
	return questions
}

// parseBreadcrumbs reads one "name|url" pair per line; position is the
// 1-based line order.
func parseBreadcrumbs(input string) []breadcrumbItem {
	items := []breadcrumbItem{}
	position := 0
	for _, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		position++
		name, url, _ := strings.Cut(line, "|")
		items = append(items, breadcrumbItem{
			Type:     "ListItem",
			Position: position,
			Name:     strings.TrimSpace(name),
			Item:     strings.TrimSpace(url),
		})
	}
	return items
}
