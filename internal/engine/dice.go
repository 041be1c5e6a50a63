package engine

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var mockDiceQueue []int

// MockDice prepares a sequence of deterministic results for the next rolls
func MockDice(results []int) {
	mockDiceQueue = results
}

// ResetMockDice clears the deterministic queue
func ResetMockDice() {
	mockDiceQueue = nil
}

// PoolResult is a resolved d10 pool.
type PoolResult struct {
	Rolls      []int
	Difficulty int
	Successes  int // before ones cancel
	Ones       int
	Net        int
	Willpower  bool
	Botch      bool
}

func (r PoolResult) String() string {
	switch {
	case r.Botch:
		return fmt.Sprintf("%v vs %d: botch", r.Rolls, r.Difficulty)
	case r.Net == 0:
		return fmt.Sprintf("%v vs %d: failure", r.Rolls, r.Difficulty)
	}
	return fmt.Sprintf("%v vs %d: %d successes", r.Rolls, r.Difficulty, r.Net)
}

// safeRand fetches a strongly uniform random integer via crypto/rand
func safeRand(max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64()) + 1
}

func rollDie() int {
	if len(mockDiceQueue) > 0 {
		val := mockDiceQueue[0]
		mockDiceQueue = mockDiceQueue[1:]
		return val
	}
	return safeRand(10)
}

// RollPool rolls pool d10 against difficulty. Ones cancel successes, a
// specialty makes tens count twice, and spent Willpower adds one success
// that cannot be cancelled. A roll with no successes and any one botches.
func RollPool(pool, difficulty int, specialty, willpower bool) (PoolResult, error) {
	if pool < 0 {
		return PoolResult{}, fmt.Errorf("dice pool cannot be negative: %d", pool)
	}
	if difficulty < 2 || difficulty > 10 {
		return PoolResult{}, fmt.Errorf("difficulty must be between 2 and 10, got %d", difficulty)
	}

	res := PoolResult{Difficulty: difficulty, Willpower: willpower}
	for i := 0; i < pool; i++ {
		val := rollDie()
		res.Rolls = append(res.Rolls, val)
		switch {
		case val == 1:
			res.Ones++
		case val >= difficulty:
			res.Successes++
			if specialty && val == 10 {
				res.Successes++
			}
		}
	}

	res.Net = max(res.Successes-res.Ones, 0)
	if willpower {
		res.Net++
	}
	res.Botch = res.Successes == 0 && res.Ones > 0 && !willpower
	return res, nil
}

// Roll rolls a pool for the character: the wound penalty shrinks the pool
// and spending Willpower draws from the temporary pool.
func (e *Engine) Roll(c *Character, pool, difficulty int, specialty, willpower bool) (PoolResult, error) {
	penalty, incapacitated := HealthPenalty(c)
	if incapacitated {
		return PoolResult{}, reject(ReasonResourceExhausted, "", "health", "incapacitated characters cannot act")
	}
	if difficulty < 2 || difficulty > 10 {
		return PoolResult{}, reject(ReasonOutOfRange, "", "difficulty", "must be between 2 and 10")
	}
	if pool < 0 {
		return PoolResult{}, reject(ReasonOutOfRange, "", "pool", "cannot be negative")
	}
	if willpower {
		if err := e.SpendWillpower(c, 1); err != nil {
			return PoolResult{}, err
		}
	}
	return RollPool(max(pool+penalty, 0), difficulty, specialty, willpower)
}
