// Command autoplay runs the inference engine against freshly generated
// boards and reports how often it wins. Results of each batch are kept
// in a local sqlite file so win rates can be compared across runs.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/solver"
	"github.com/vancomm/minesweeper-ai/internal/store"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
	})
}

type batchResult struct {
	Width     int
	Height    int
	MineCount int
	Games     int
	Won       int
	Dead      int
	Stalled   int
	Guesses   int
	Seed      uint64
	PlayedAt  time.Time
}

func (b batchResult) winRate() float64 {
	if b.Games == 0 {
		return 0
	}
	return float64(b.Won) / float64(b.Games)
}

func playBatch(width, height, mineCount, games int, seed uint64) (batchResult, error) {
	r := rand.New(rand.NewPCG(seed, seed+1))
	res := batchResult{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
		Games:     games,
		Seed:      seed,
		PlayedAt:  time.Now(),
	}
	for i := 0; i < games; i++ {
		b, err := game.NewBoard(height, width, mineCount, r)
		if err != nil {
			return res, err
		}
		g := game.NewGame(b)
		e := solver.NewEngine(height, width)
		pr := e.Play(g, r)
		res.Guesses += pr.Guesses
		switch {
		case pr.Won:
			res.Won++
		case pr.Dead:
			res.Dead++
		default:
			res.Stalled++
		}
		log.WithFields(logrus.Fields{
			"game":    i,
			"won":     pr.Won,
			"dead":    pr.Dead,
			"moves":   pr.Moves,
			"guesses": pr.Guesses,
		}).Debug("finished game")
	}
	return res, nil
}

func run() error {
	var (
		width     = flag.Int("width", 8, "board width")
		height    = flag.Int("height", 8, "board height")
		mineCount = flag.Int("mines", 10, "mine count")
		games     = flag.Int("games", 100, "games to play")
		seed      = flag.Uint64("seed", 0, "rng seed (0 picks one from the clock)")
		dbPath    = flag.String("db", "autoplay.db", "sqlite file for batch results")
		list      = flag.Bool("list", false, "print stored batches and exit")
		verbose   = flag.Bool("v", false, "log every game")
	)
	flag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		return fmt.Errorf("unable to open results db: %w", err)
	}
	defer db.Close()

	results, err := store.New(db, "batches")
	if err != nil {
		return fmt.Errorf("unable to create results store: %w", err)
	}

	if *list {
		keys, err := results.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			var b batchResult
			if err := results.Get(key, &b); err != nil {
				return err
			}
			fmt.Printf("%s\t%dx%d/%d\tgames=%d won=%d (%.1f%%) guesses=%d\n",
				key, b.Width, b.Height, b.MineCount,
				b.Games, b.Won, 100*b.winRate(), b.Guesses)
		}
		return nil
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	log.WithFields(logrus.Fields{
		"width":  *width,
		"height": *height,
		"mines":  *mineCount,
		"games":  *games,
		"seed":   *seed,
	}).Info("starting batch")

	batch, err := playBatch(*width, *height, *mineCount, *games, *seed)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"won":      batch.Won,
		"dead":     batch.Dead,
		"stalled":  batch.Stalled,
		"win_rate": fmt.Sprintf("%.1f%%", 100*batch.winRate()),
		"guesses":  batch.Guesses,
	}).Info("batch complete")

	key := batch.PlayedAt.Format(time.RFC3339)
	if err := results.Set(key, batch); err != nil {
		return fmt.Errorf("unable to store batch result: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
