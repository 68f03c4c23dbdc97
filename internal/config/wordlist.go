package config

// DefaultWordlist is the curated five-letter target pool used when an
// operator config supplies no wordlist.words and a submission omits
// target_word. It is intentionally small; production deployments are
// expected to supply a larger curated list via config.
var DefaultWordlist = []string{
	"crane", "slate", "audio", "irate", "stare",
	"mount", "plumb", "grape", "shiny", "blind",
	"vivid", "crisp", "flock", "whale", "zesty",
}
