// meta/meta.go
package meta

// DEFAULT_PAIRS defines the number of pairs in a default game.
const DEFAULT_PAIRS = 10

// MAX_PAIRS caps the size of a game.
const MAX_PAIRS = 256

// MAX_REQUEST_BYTES caps the body of a request to the game service.
const MAX_REQUEST_BYTES = 1 << 16

// DEFAULT_PRIZE defines the total prize money of a game.
const DEFAULT_PRIZE = 1_000_000.0

// BLACKOUT_PENALTY defines the fraction of the total prize lost on a blackout.
const BLACKOUT_PENALTY = 0.25

// EXPLORATION defines the c^2 exploration constant of the agent's pair scores.
const EXPLORATION = 0.5

// CONSISTENCY_BUDGET defines how many permutations the agent walks looking
// for a match-up consistent with past beams. The walk only reorders the last
// few positions of the optimum, so it pays off in small games.
const CONSISTENCY_BUDGET = 50_000

// MAX_ROUNDS caps a local engine run regardless of the game's guesses.
const MAX_ROUNDS = 1_000

// SERVER_ADDR defines the default listen address of the environment service.
const SERVER_ADDR = ":8080"
