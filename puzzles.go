package main

import (
	"math/rand"
)

// Puzzle is an immutable catalog entry. Field names mirror the wire format
// consumed by the web client.
type Puzzle struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"` // "movie", "song", "book", "tv" or "game"
	Emojis     string   `json:"emojis"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"` // "easy", "medium" or "hard"
	Hints      []string `json:"hints"`
}

var defaultPuzzles = []Puzzle{
	{
		ID:         "1",
		Category:   "movie",
		Emojis:     "👑🦁",
		Answer:     "The Lion King",
		Difficulty: "easy",
		Hints:      []string{"Disney classic", "Set in Africa", "Hakuna Matata"},
	},
	{
		ID:         "2",
		Category:   "movie",
		Emojis:     "🐠🔍",
		Answer:     "Finding Nemo",
		Difficulty: "easy",
		Hints:      []string{"Pixar animation", "Ocean adventure", "Father and son"},
	},
	{
		ID:         "3",
		Category:   "movie",
		Emojis:     "🕷️👨‍🎓",
		Answer:     "Spider-Man",
		Difficulty: "easy",
		Hints:      []string{"Marvel superhero", "Web slinger", "New York City"},
	},
	{
		ID:         "4",
		Category:   "movie",
		Emojis:     "🌟⚔️🚀",
		Answer:     "Star Wars",
		Difficulty: "medium",
		Hints:      []string{"Space saga", "The Force", "Luke Skywalker"},
	},
	{
		ID:         "5",
		Category:   "movie",
		Emojis:     "💍🗻🧙‍♂️",
		Answer:     "The Lord of the Rings",
		Difficulty: "medium",
		Hints:      []string{"Fantasy epic", "Middle-earth", "Frodo"},
	},
	{
		ID:         "6",
		Category:   "movie",
		Emojis:     "🦖🏝️⚡",
		Answer:     "Jurassic Park",
		Difficulty: "medium",
		Hints:      []string{"Steven Spielberg", "Dinosaurs", "Theme park gone wrong"},
	},
	{
		ID:         "7",
		Category:   "song",
		Emojis:     "💃🕺🌙",
		Answer:     "Dancing in the Moonlight",
		Difficulty: "easy",
		Hints:      []string{"Classic feel-good song", "Night time", "King Harvest"},
	},
	{
		ID:         "8",
		Category:   "song",
		Emojis:     "🌈🌧️☀️",
		Answer:     "Somewhere Over the Rainbow",
		Difficulty: "easy",
		Hints:      []string{"Wizard of Oz", "Judy Garland", "Hope and dreams"},
	},
	{
		ID:         "9",
		Category:   "tv",
		Emojis:     "☕🏠👥💬",
		Answer:     "Friends",
		Difficulty: "easy",
		Hints:      []string{"New York City", "Central Perk", "Six friends"},
	},
	{
		ID:         "10",
		Category:   "tv",
		Emojis:     "🔥🐉👑⚔️",
		Answer:     "Game of Thrones",
		Difficulty: "medium",
		Hints:      []string{"HBO series", "Westeros", "Iron Throne"},
	},
	{
		ID:         "11",
		Category:   "book",
		Emojis:     "⚡👓🏰",
		Answer:     "Harry Potter",
		Difficulty: "easy",
		Hints:      []string{"Wizarding world", "Hogwarts", "J.K. Rowling"},
	},
	{
		ID:         "12",
		Category:   "book",
		Emojis:     "🐰⏰🎩",
		Answer:     "Alice in Wonderland",
		Difficulty: "medium",
		Hints:      []string{"Lewis Carroll", "Cheshire Cat", "Mad Hatter"},
	},
	{
		ID:         "13",
		Category:   "game",
		Emojis:     "🍄👨‍🔧🏰",
		Answer:     "Super Mario",
		Difficulty: "easy",
		Hints:      []string{"Nintendo", "Princess Peach", "Mushroom Kingdom"},
	},
	{
		ID:         "14",
		Category:   "game",
		Emojis:     "⚔️🛡️🐉",
		Answer:     "Skyrim",
		Difficulty: "medium",
		Hints:      []string{"Elder Scrolls", "Dragonborn", "Fantasy RPG"},
	},
}

// Catalog hands out puzzles at random. Entries are never mutated after
// construction, so returned pointers are safe to share across rooms.
type Catalog struct {
	puzzles []Puzzle
}

func newCatalog() *Catalog {
	return &Catalog{puzzles: defaultPuzzles}
}

func (c *Catalog) Random() *Puzzle {
	return &c.puzzles[rand.Intn(len(c.puzzles))]
}

func (c *Catalog) Len() int {
	return len(c.puzzles)
}
