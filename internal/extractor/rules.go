package extractor

import "regexp"

var (
	domainPattern    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?([a-zA-Z0-9][-a-zA-Z0-9]*\.[a-zA-Z]{2,})(?:/[^\s]*)?`)
	timestampPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)
	leadingTimestamp = regexp.MustCompile(`^\d+[:/]\d+`)
	phoneLike        = regexp.MustCompile(`^[\d\s\-\(\)]+$`)
	nonWordPattern   = regexp.MustCompile(`[^\w\s]`)
	digitsOnly       = regexp.MustCompile(`^\d+$`)
	namePattern      = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`)
	mentionPattern   = regexp.MustCompile(`@(\w+)`)
	lineBreak        = regexp.MustCompile(`\r\n|\r|\n`)
)

var codeIndicators = []string{
	"function", "class ", "def ", "import ", "const ", "let ", "var ",
	"public ", "private ", "return ", "if (", "for (", "while (",
	"=>", "->", "::", "==", "!=", "&&", "||",
	"{", "}", "[]", "()", "//", "/*", "*/",
}

var chatIndicators = []string{
	"sent", "delivered", "read", "typing",
	"am", "pm", "today", "yesterday",
}

var recipeIndicators = []string{
	"ingredients", "instructions", "recipe", "serves", "prep time",
	"cook time", "tablespoon", "teaspoon", "cup", "ounce",
	"bake", "fry", "boil", "simmer", "preheat",
}

var productIndicators = []string{
	"add to cart", "buy now", "price", "$", "€", "£",
	"in stock", "out of stock", "shipping", "reviews",
	"rating", "stars", "wishlist",
}

var socialDomains = []string{
	"twitter", "x.com", "facebook", "instagram", "tiktok",
	"linkedin", "reddit", "threads", "mastodon",
}

var socialIndicators = []string{
	"like", "retweet", "share", "comment", "follow",
	"followers", "following", "reply", "quote",
}

var mapDomains = []string{"maps.google", "maps.apple", "waze", "openstreetmap"}

var mapIndicators = []string{
	"directions", "navigate", "route", "miles", "km",
	"min drive", "traffic", "eta",
}

// stopWords never become topics.
var stopWords = toSet(
	// articles, pronouns, prepositions
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
	"her", "his", "him", "she", "was", "one", "our", "out", "has", "have",
	"been", "were", "they", "this", "that", "with", "will", "your", "from",
	"more", "when", "some", "what", "there", "which", "their", "about",
	"would", "these", "other", "into", "just", "also", "than", "then",
	"only", "come", "its", "over", "such", "make", "like", "being", "here",
	"could", "after", "first", "where", "those", "does", "didn", "don",
	"each", "even", "much", "many", "most", "same", "both", "well", "back",
	"them", "very", "should", "because", "through", "before", "between",
	"under", "again", "further", "once", "during", "while", "above", "below",
	"until", "against", "down", "off", "own", "why", "how", "any", "every",

	// verbs
	"need", "want", "know", "think", "take", "get", "give", "go", "see",
	"look", "find", "use", "tell", "ask", "work", "seem", "feel", "try",
	"leave", "call", "keep", "let", "begin", "show", "hear", "play", "run",
	"move", "live", "believe", "hold", "bring", "happen", "write", "provide",
	"sit", "stand", "lose", "pay", "meet", "include", "continue", "set",
	"learn", "change", "lead", "understand", "watch", "follow", "stop",
	"create", "speak", "read", "allow", "add", "spend", "grow", "open",
	"walk", "win", "offer", "remember", "love", "consider", "appear", "buy",
	"wait", "serve", "die", "send", "expect", "build", "stay", "fall",
	"cut", "reach", "kill", "remain", "using", "getting", "making", "going",
	"having", "looking", "coming", "taking", "seeing", "saying", "doing",

	// adjectives, adverbs
	"good", "new", "used", "better", "best", "great", "little", "right",
	"still", "high", "different", "small", "large", "next", "early", "young",
	"important", "few", "public", "bad", "able", "really", "already",
	"sure", "real", "long", "last", "full", "special", "free", "clear",
	"another", "always", "never", "often", "less", "actually", "probably",
	"maybe", "perhaps", "however", "though", "although", "almost", "enough",
	"quite", "rather", "something", "anything", "everything", "nothing",
	"someone", "anyone", "everyone", "else", "whether", "either", "neither",

	// time
	"time", "year", "years", "day", "days", "today", "now", "week", "month",
	"hour", "hours", "minute", "minutes", "second", "seconds", "yesterday",
	"tomorrow", "morning", "night", "tonight",

	// numbers
	"zero", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "hundred", "thousand", "million",

	// UI
	"click", "tap", "press", "button", "page", "link", "view", "share",
	"save", "edit", "delete", "close", "menu", "home", "settings",
	"previous", "submit", "cancel", "okay", "done", "loading",
	"please", "enter", "select", "choose", "option", "options",

	// filler nouns
	"people", "person", "thing", "things", "place", "way", "ways", "part",
	"case", "point", "fact", "number", "group", "problem", "world", "area",
	"company", "system", "program", "question", "government", "line",
	"word", "words", "text", "info", "information",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
