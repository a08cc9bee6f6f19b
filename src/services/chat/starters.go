// starters.go - Conversation starter prompts for the empty-history screen.

package chat

import "math/rand"

var starterPool = []string{
	"Write a couplet about the monsoon rain",
	"Tell me about Mirza Ghalib in your own words",
	"Compose a verse about chai on a cold evening",
	"What does the moon whisper to the sea?",
	"Describe Lahore in a short poem",
	"Write a mischievous verse about Mondays",
	"Share a couplet about old friendships",
	"What would Faiz say about today?",
	"Write a playful verse about cricket",
	"Compose something about a letter never sent",
}

// RandomStarters picks n distinct starters at random. It returns fewer when
// the pool is smaller than n.
func RandomStarters(n int) []string {
	pool := append([]string(nil), starterPool...)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
