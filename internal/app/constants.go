package app

// MinPlayersToStartGame defines the minimum number of seated players required to start a game.
// The match handler overrides it from the game config.
const MinPlayersToStartGame = 2

// DefaultTicketsPerPlayer is dealt to seats that did not pick a ticket count.
const DefaultTicketsPerPlayer = 1
