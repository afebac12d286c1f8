// Package storefront holds the static marketing content shown on the home page.
package storefront

import (
	"net/url"
	"strings"

	"github.com/klassico/storefront/internal/models"
)

const (
	WhatsAppNumber  = "+918910131099"
	WhatsAppMessage = "Hello! I'd like to place an order for Klassico products."
)

type MenuItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type Navbar struct {
	Brand     string     `json:"brand"`
	Menu      []MenuItem `json:"menu"`
	OrderLink string     `json:"order_link"`
}

type CTACard struct {
	Badge       string `json:"badge"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Note        string `json:"note,omitempty"`
	ButtonLabel string `json:"button_label"`
	Link        string `json:"link"`
}

type CTASection struct {
	WhatsAppNumber string    `json:"whatsapp_number"`
	WhatsAppLink   string    `json:"whatsapp_link"`
	Cards          []CTACard `json:"cards"`
}

type CraftStep struct {
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Craftsmanship struct {
	Tag      string      `json:"tag"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Steps    []CraftStep `json:"steps"`
}

type Banner struct {
	CategoryID  string `json:"category_id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Position    string `json:"position"`
}

type PremiumBanners struct {
	Tag      string   `json:"tag"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Banners  []Banner `json:"banners"`
}

// WhatsAppLink builds a wa.me link. An empty message yields a bare chat link.
func WhatsAppLink(number, message string) string {
	link := "https://wa.me/" + number
	if message == "" {
		return link
	}
	// encodeURIComponent leaves a handful of marks unescaped that QueryEscape does not.
	escaped := url.QueryEscape(message)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	escaped = strings.NewReplacer("%27", "'", "%21", "!", "%28", "(", "%29", ")", "%2A", "*").Replace(escaped)
	return link + "?text=" + escaped
}

func NavbarContent() Navbar {
	return Navbar{
		Brand: "KLASSICO",
		Menu: []MenuItem{
			{Name: "Collections", Path: "/#collections"},
			{Name: "Craftsmanship", Path: "/#craftsmanship"},
			{Name: "Sustainability", Path: "/#sustainability"},
			{Name: "About Us", Path: "/about"},
		},
		OrderLink: WhatsAppLink(strings.TrimPrefix(WhatsAppNumber, "+"), ""),
	}
}

func CTAContent() CTASection {
	link := WhatsAppLink(WhatsAppNumber, WhatsAppMessage)
	return CTASection{
		WhatsAppNumber: WhatsAppNumber,
		WhatsAppLink:   link,
		Cards: []CTACard{
			{
				Badge:       "Premium",
				Title:       "Order via WhatsApp",
				Body:        "Simply message us on WhatsApp to place your order. Our concierge will guide you through the selection process and assist with sizing, customization, and delivery options.",
				ButtonLabel: "WhatsApp Order Concierge",
				Link:        link,
			},
			{
				Badge:       "Hot Sale",
				Title:       "Limited Edition Collection",
				Body:        "Our newest premium collection of jeans, blazers, kurtis and sarees is almost sold out. Only a few pieces remain. Secure yours before they're gone forever.",
				Note:        "Only 3 Left in This Edition",
				ButtonLabel: "Order Now via WhatsApp",
				Link:        link,
			},
		},
	}
}

func CraftsmanshipContent() Craftsmanship {
	return Craftsmanship{
		Tag:      "Our Process",
		Title:    "Klassico Craftsmanship",
		Subtitle: "Three generations of tailoring excellence, creating garments that stand the test of time",
		Steps: []CraftStep{
			{
				Number:      "01",
				Title:       "Premium Materials",
				Description: "We source the finest Italian fabrics, organic silks, and sustainable materials to ensure exceptional quality and comfort.",
				Image:       "https://images.unsplash.com/photo-1536866466683-719c280a6944?q=80&w=1935&auto=format&fit=crop",
			},
			{
				Number:      "02",
				Title:       "Expert Tailoring",
				Description: "Our master craftsmen bring three generations of tailoring expertise to create perfectly fitted garments with meticulous attention to detail.",
				Image:       "https://images.unsplash.com/photo-1598915850252-fb07ad1e6768?q=80&w=1887&auto=format&fit=crop",
			},
			{
				Number:      "03",
				Title:       "Artisanal Finish",
				Description: "Each piece is hand-finished with traditional techniques, ensuring a level of quality and refinement that can only come from true artisanship.",
				Image:       "https://images.unsplash.com/photo-1561052967-61fc91e48d79?q=80&w=2070&auto=format&fit=crop",
			},
		},
	}
}

type bannerDetail struct {
	title       string
	description string
	image       string
}

// PrioritySlugs is the order in which signature collections are shown.
var PrioritySlugs = []string{"blazers", "jeans", "kurtis", "sarees"}

var bannerDetails = map[string]bannerDetail{
	"blazers": {
		title:       "Premium Blazers",
		description: "Elevate your style with our handcrafted blazers. Made from premium materials and tailored to perfection for the modern connoisseur.",
		image:       "https://images.unsplash.com/photo-1580657018950-c7f7d6a6d990?q=80&w=2070&auto=format&fit=crop",
	},
	"jeans": {
		title:       "Designer Jeans",
		description: "Experience unparalleled comfort with our premium denim collection. Each pair blends artisanal craftsmanship with contemporary design.",
		image:       "https://images.unsplash.com/photo-1715532846484-1b10ddf694d0?q=80&w=2127&auto=format&fit=crop",
	},
	"kurtis": {
		title:       "Exclusive Kurtis",
		description: "Our kurtis celebrate traditional craftsmanship with modern sensibilities. Each piece tells a story through intricate detailing and premium fabrics.",
		image:       "https://images.unsplash.com/photo-1570382667048-23b581258f6a?q=80&w=1915&auto=format&fit=crop",
	},
	"sarees": {
		title:       "Luxury Sarees",
		description: "Timeless elegance meets contemporary design. Our sarees are crafted from the finest silks and adorned with meticulous embellishments.",
		image:       "https://images.unsplash.com/photo-1616756141603-6d37d5cde2a2?q=80&w=1974&auto=format&fit=crop",
	},
}

// PremiumBannersContent picks the priority collections that exist among categories,
// in priority order, alternating left and right.
func PremiumBannersContent(categories []models.Category) PremiumBanners {
	section := PremiumBanners{
		Tag:      "Klassico Premium",
		Title:    "Signature Collections",
		Subtitle: "Discover our exclusive premium collections, where timeless elegance meets contemporary sophistication",
		Banners:  []Banner{},
	}

	bySlug := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c
	}

	for _, s := range PrioritySlugs {
		c, ok := bySlug[s]
		if !ok {
			continue
		}
		d := bannerDetails[s]
		position := "left"
		if len(section.Banners)%2 == 1 {
			position = "right"
		}
		section.Banners = append(section.Banners, Banner{
			CategoryID:  c.ID,
			Slug:        c.Slug,
			Title:       d.title,
			Description: d.description,
			Image:       d.image,
			Position:    position,
		})
	}
	return section
}
