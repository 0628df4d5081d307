// Package catalog holds the fixed English source texts every language pack
// is translated from.
package catalog

import "github.com/allergiapp/langpack/internal"

// Allergen is one entry of the source catalog. Warning is empty for
// allergens that carry no extra warning on the card.
type Allergen struct {
	ID          internal.AllergenID
	Name        string
	Description string
	Warning     string
}

// Catalog is the full English source for one download: the allergen list and
// the six card text fields. The slice order is load-bearing: the download
// pipeline re-associates translated texts with their allergens by position.
type Catalog struct {
	Allergens []Allergen
	CardTexts internal.CardTexts
}

// Default returns the catalog shipped with the app.
func Default() Catalog {
	return Catalog{Allergens: allergens, CardTexts: cardTexts}
}

// Names returns the allergen display names in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, len(c.Allergens))
	for i, a := range c.Allergens {
		out[i] = a.Name
	}
	return out
}

// Descriptions returns the allergen descriptions in catalog order.
func (c Catalog) Descriptions() []string {
	out := make([]string, len(c.Allergens))
	for i, a := range c.Allergens {
		out[i] = a.Description
	}
	return out
}

// Warnings returns, in catalog order, the IDs and texts of the allergens that
// have a warning. Both slices may be empty.
func (c Catalog) Warnings() ([]internal.AllergenID, []string) {
	var ids []internal.AllergenID
	var texts []string
	for _, a := range c.Allergens {
		if a.Warning != "" {
			ids = append(ids, a.ID)
			texts = append(texts, a.Warning)
		}
	}
	return ids, texts
}

// CardTextList returns the six card texts in their fixed order: header,
// subtitle, message, thanks, tapToSee, showIn.
func (c Catalog) CardTextList() []string {
	return []string{
		c.CardTexts.Header,
		c.CardTexts.Subtitle,
		c.CardTexts.Message,
		c.CardTexts.Thanks,
		c.CardTexts.TapToSee,
		c.CardTexts.ShowIn,
	}
}

// TotalItems is the number of strings one full download translates.
func (c Catalog) TotalItems() int {
	_, warnings := c.Warnings()
	return 2*len(c.Allergens) + len(warnings) + len(c.CardTextList())
}

// The 14 allergens of EU Regulation 1169/2011, the set the card covers.
var allergens = []Allergen{
	{
		ID:          "peanuts",
		Name:        "Peanuts",
		Description: "Peanuts and peanut products such as peanut butter, peanut oil and groundnut flour.",
		Warning:     "Even trace amounts can cause a severe reaction. Please check frying oils and sauces.",
	},
	{
		ID:          "nuts",
		Name:        "Tree nuts",
		Description: "Almonds, hazelnuts, walnuts, cashews, pecans, pistachios, macadamia and Brazil nuts.",
		Warning:     "Nuts are often hidden in pestos, desserts and breadings. Please check every course.",
	},
	{
		ID:          "dairy",
		Name:        "Milk",
		Description: "Milk and dairy products including butter, cheese, cream, yogurt and milk powder.",
		Warning:     "Butter and cream are common in sauces and mashed dishes even when not listed.",
	},
	{
		ID:          "eggs",
		Name:        "Eggs",
		Description: "Eggs and foods containing egg such as mayonnaise, fresh pasta and many baked goods.",
		Warning:     "Egg is often used as a binder or glaze. Please check pasta, batters and pastries.",
	},
	{
		ID:          "fish",
		Name:        "Fish",
		Description: "Fish of any kind, including anchovies, fish sauce, fish stock and Worcestershire sauce.",
		Warning:     "Fish sauce and anchovies are common flavourings in dressings and stews.",
	},
	{
		ID:          "crustaceans",
		Name:        "Crustaceans",
		Description: "Shrimp, prawns, crab, lobster, crayfish and products made from them.",
		Warning:     "Shellfish stock is often used in rice dishes, soups and sauces.",
	},
	{
		ID:          "mollusks",
		Name:        "Mollusks",
		Description: "Mussels, clams, oysters, scallops, squid, octopus and snails.",
		Warning:     "Oyster sauce and squid ink appear in many dishes without being named.",
	},
	{
		ID:          "gluten",
		Name:        "Gluten",
		Description: "Cereals containing gluten: wheat, rye, barley, spelt and oats, including flour, bread, pasta and beer.",
		Warning:     "Flour is used to thicken many sauces and soups. Even small amounts are a problem.",
	},
	{
		ID:          "soy",
		Name:        "Soy",
		Description: "Soybeans and soy products such as soy sauce, tofu, edamame, miso and soy lecithin.",
		Warning:     "Soy sauce and soy lecithin are present in many marinades and processed foods.",
	},
	{
		ID:          "sesame",
		Name:        "Sesame",
		Description: "Sesame seeds and sesame products such as tahini, sesame oil and hummus.",
		Warning:     "Sesame oil and seeds are common on bread and in dressings.",
	},
	{
		ID:          "mustard",
		Name:        "Mustard",
		Description: "Mustard seeds, mustard powder and prepared mustard, including in dressings and marinades.",
		Warning:     "Mustard is a frequent hidden ingredient in vinaigrettes and spice mixes.",
	},
	{
		ID:          "celery",
		Name:        "Celery",
		Description: "Celery stalks, leaves, seeds and celeriac, including celery salt and vegetable stocks.",
	},
	{
		ID:          "sulfites",
		Name:        "Sulfites",
		Description: "Sulfur dioxide and sulfites used as preservatives in dried fruit, wine and vinegar.",
		Warning:     "Wine, vinegar and dried fruit used in cooking usually contain sulfites.",
	},
	{
		ID:          "lupins",
		Name:        "Lupin",
		Description: "Lupin seeds and lupin flour, found in some baked goods, pasta and gluten-free products.",
	},
}

// English card texts shown to restaurant staff.
var cardTexts = internal.CardTexts{
	Header:   "ATTENTION",
	Subtitle: "FOOD ALLERGIES",
	Message:  "I have the following food allergies. Please ensure my food does not contain these ingredients.",
	Thanks:   "Thank you so much for your understanding and your help.",
	TapToSee: "Tap to see examples",
	ShowIn:   "Show in",
}
