package domain

// Image holds the upstream image variants for a character.
type Image struct {
	IconURL   string `json:"icon_url"`
	SmallURL  string `json:"small_url"`
	MediumURL string `json:"medium_url"`
	ScreenURL string `json:"screen_url"`
}

// Publisher identifies the publisher a character belongs to.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Character is one comic-book character as served by the content API.
type Character struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	RealName      string     `json:"real_name"`
	Aliases       string     `json:"aliases"`
	Deck          string     `json:"deck"`
	Description   string     `json:"description"`
	Image         Image      `json:"image"`
	Publisher     *Publisher `json:"publisher,omitempty"`
	SiteDetailURL string     `json:"site_detail_url"`
	DateAdded     string     `json:"date_added"`
}

// CharacterPage is one page of catalog results.
type CharacterPage struct {
	Characters []Character `json:"characters"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
