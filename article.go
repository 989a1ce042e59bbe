package storyindex

// DefaultAuthor is used when no author can be extracted from a page.
const DefaultAuthor = "Unknown"

// Article represents one fully extracted story.
// Articles are created once per successful fetch and extract and are never
// mutated afterwards.
type Article struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Author   string   `json:"author"`
	URL      string   `json:"url"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	Content  []string `json:"content"`
}

// Validate returns an error if the article is missing required fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if len(a.Content) == 0 {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// SearchRecord is the full-text search projection of an Article.
type SearchRecord struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Author   string   `json:"author"`
	Content  []string `json:"content"`
	Tags     []string `json:"tags"`
}

// MetadataRecord is the listing projection of an Article.
// It shares its ID with the SearchRecord built from the same Article.
type MetadataRecord struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	URL       string   `json:"url"`
	Author    string   `json:"author"`
	Date      string   `json:"date"`
	WordCount int      `json:"wordCount"`
	Tags      []string `json:"tags"`
}

// WordCloudEntry is one ranked term of the corpus word cloud.
type WordCloudEntry struct {
	Word  string  `json:"word"`
	Count int     `json:"count"`
	Size  float64 `json:"size"`
}
