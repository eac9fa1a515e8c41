package report

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEloRatings(t *testing.T) {
	Convey("Given a single matchup with one decisive game", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo", game{winner: "player_a", turns: 3})

		Convey("Then the winner gains 32 and the loser drops 32", func() {
			So(records(querySection(t, db, "elo_ratings")), ShouldResemble, [][]string{
				{"alpha", "1532"},
				{"bravo", "1468"},
			})
		})
	})

	Convey("Given a single matchup with one tie", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo", game{winner: "tie", turns: 3})

		Convey("Then both players stay at 1500", func() {
			So(records(querySection(t, db, "elo_ratings")), ShouldResemble, [][]string{
				{"alpha", "1500"},
				{"bravo", "1500"},
			})
		})
	})

	Convey("Given a player who appears in both seats", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo", game{winner: "player_a"}, game{winner: "pending"})
		addGames(t, db, "charlie", "alpha", game{winner: "player_a"})

		Convey("Then deltas are summed over every matchup and unfinished games count for nobody", func() {
			So(records(querySection(t, db, "elo_ratings")), ShouldResemble, [][]string{
				{"charlie", "1532"},
				{"alpha", "1500"},
				{"bravo", "1468"},
			})
		})
	})

	Convey("Given a player matched against themselves", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "alpha", game{winner: "player_a"})

		Convey("Then the win is counted once", func() {
			So(records(querySection(t, db, "elo_ratings")), ShouldResemble, [][]string{
				{"alpha", "1532"},
			})
		})
	})
}

func TestWinRates(t *testing.T) {
	Convey("Given a first-seat player with 3 wins out of 4 games", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo",
			game{winner: "player_a"},
			game{winner: "player_a"},
			game{winner: "player_b"},
			game{winner: "player_a"},
		)

		Convey("Then the win percentage is 75.00", func() {
			table := querySection(t, db, "win_rates")
			So(table.Columns, ShouldResemble, []string{"player_a", "wins", "total_games", "win_percentage"})
			So(records(table), ShouldResemble, [][]string{{"alpha", "3", "4", "75.00"}})
			So(table.Rows[0].Float("win_percentage"), ShouldEqual, 75.0)
		})
	})
}

func TestWinStreaks(t *testing.T) {
	Convey("Given five games won A, A, A, B, A", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "A", "B",
			game{winner: "player_a"},
			game{winner: "player_a"},
			game{winner: "player_a"},
			game{winner: "player_b"},
			game{winner: "player_a"},
		)

		Convey("Then A has a streak of 3 and B has none", func() {
			So(records(querySection(t, db, "win_streaks")), ShouldResemble, [][]string{{"A", "3"}})
		})
	})

	Convey("Given a tie between two wins by the same player", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "A", "B",
			game{winner: "player_a"},
			game{winner: "tie"},
			game{winner: "player_a"},
		)

		Convey("Then the tie breaks the streak", func() {
			So(querySection(t, db, "win_streaks").Len(), ShouldEqual, 0)
		})
	})

	Convey("Given an unfinished game between two wins by the same player", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "A", "B",
			game{winner: "player_a"},
			game{winner: "pending"},
			game{winner: "player_a"},
		)

		Convey("Then the unfinished game breaks the streak", func() {
			So(querySection(t, db, "win_streaks").Len(), ShouldEqual, 0)
		})
	})

	Convey("Given wins by one player interleaved with another matchup", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "A", "B", game{winner: "player_a"})
		addGames(t, db, "C", "D", game{winner: "player_a"})
		addGames(t, db, "A", "B", game{winner: "player_a"})

		Convey("Then streaks follow the order of all games, not of one matchup", func() {
			So(querySection(t, db, "win_streaks").Len(), ShouldEqual, 0)
		})
	})

	Convey("Given more than ten players with a streak", t, func() {
		db := newResultsDB(t)
		for i := 0; i < 11; i++ {
			addGames(t, db, fmt.Sprintf("p%02d", i), "opponent", game{winner: "player_a"}, game{winner: "player_a"})
		}
		addGames(t, db, "p11", "opponent", game{winner: "player_a"}, game{winner: "player_a"}, game{winner: "player_a"})

		Convey("Then only the ten longest are listed, longest first then by name", func() {
			table := querySection(t, db, "win_streaks")
			So(table.Len(), ShouldEqual, 10)
			So(table.Rows[0].Cells(), ShouldResemble, []string{"p11", "3"})
			So(table.Rows[1].Cells(), ShouldResemble, []string{"p00", "2"})
			So(table.Rows[9].Cells(), ShouldResemble, []string{"p08", "2"})
		})
	})
}

func TestGameLengths(t *testing.T) {
	Convey("Given a game with turns numbered 0 to 4", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo", game{winner: "player_b", turns: 5})

		Convey("Then its length is 5", func() {
			longest := querySection(t, db, "longest_games")
			So(longest.Columns, ShouldResemble, []string{"player_a", "player_b", "game_id", "game_length", "winner"})
			So(records(longest), ShouldResemble, [][]string{
				{"alpha", "bravo", "1", "5", "player_b"},
			})
			So(records(querySection(t, db, "game_lengths")), ShouldResemble, [][]string{
				{"alpha", "bravo", "5.00"},
			})
		})
	})

	Convey("Given a matchup with games of 2 and 5 turns", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo", game{winner: "player_a", turns: 2}, game{winner: "player_b", turns: 5})

		Convey("Then the average is 3.50 and the longest game comes first", func() {
			So(records(querySection(t, db, "game_lengths")), ShouldResemble, [][]string{
				{"alpha", "bravo", "3.50"},
			})
			longest := querySection(t, db, "longest_games")
			So(longest.Rows[0].String("game_length"), ShouldEqual, "5")
			So(longest.Rows[1].String("game_length"), ShouldEqual, "2")
		})
	})

	Convey("Given more than ten games of different lengths", t, func() {
		db := newResultsDB(t)
		games := make([]game, 0, 12)
		for turns := 1; turns <= 12; turns++ {
			games = append(games, game{winner: "player_a", turns: turns})
		}
		addGames(t, db, "alpha", "bravo", games...)

		Convey("Then only the ten longest are listed, longest first", func() {
			longest := querySection(t, db, "longest_games")
			So(longest.Len(), ShouldEqual, 10)
			So(longest.Rows[0].String("game_length"), ShouldEqual, "12")
			So(longest.Rows[0].String("game_id"), ShouldEqual, "12")
			So(longest.Rows[9].String("game_length"), ShouldEqual, "3")
		})
	})
}

func TestTieStatistics(t *testing.T) {
	Convey("Given one matchup with 1 tie in 4 games and one without ties", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo",
			game{winner: "tie"},
			game{winner: "player_a"},
			game{winner: "player_b"},
			game{winner: "player_a"},
		)
		addGames(t, db, "charlie", "delta", game{winner: "player_a"})

		Convey("Then only the tied matchup is listed with ties over all its games", func() {
			So(records(querySection(t, db, "tie_statistics")), ShouldResemble, [][]string{
				{"alpha", "bravo", "1", "25.00"},
			})
		})
	})
}

func TestHeadToHeadAndCombinations(t *testing.T) {
	Convey("Given two matchups with mixed outcomes", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo",
			game{winner: "player_a"},
			game{winner: "player_a"},
			game{winner: "player_b"},
			game{winner: "tie"},
		)
		addGames(t, db, "bravo", "charlie", game{winner: "player_b"})

		Convey("Then head-to-head counts both seats and ties", func() {
			So(records(querySection(t, db, "head_to_head")), ShouldResemble, [][]string{
				{"alpha", "bravo", "2", "1", "1", "4"},
				{"bravo", "charlie", "0", "1", "0", "1"},
			})
		})

		Convey("Then winning combinations exclude ties and sort by wins", func() {
			So(records(querySection(t, db, "winning_combinations")), ShouldResemble, [][]string{
				{"alpha", "bravo", "2"},
				{"bravo", "alpha", "1"},
				{"charlie", "bravo", "1"},
			})
		})
	})
}

func TestHeadToHeadOrdering(t *testing.T) {
	Convey("Given a busier matchup that sorts later by name", t, func() {
		db := newResultsDB(t)
		addGames(t, db, "alpha", "bravo", game{winner: "player_a"})
		addGames(t, db, "charlie", "delta",
			game{winner: "player_a"},
			game{winner: "player_b"},
			game{winner: "tie"},
		)

		Convey("Then matchups are ordered by games played", func() {
			table := querySection(t, db, "head_to_head")
			So(table.Rows[0].String("player_a"), ShouldEqual, "charlie")
			So(table.Rows[0].String("total_games"), ShouldEqual, "3")
			So(table.Rows[1].String("player_a"), ShouldEqual, "alpha")
		})
	})
}

func TestSectionTable(t *testing.T) {
	Convey("Given the default section table", t, func() {
		sections := Sections()

		Convey("Then sections keep their rendering order and charted keys", func() {
			keys := make([]string, 0, len(sections))
			charted := make([]string, 0, len(sections))
			for _, sec := range sections {
				keys = append(keys, sec.Key)
				if sec.Chart != nil {
					charted = append(charted, sec.Key)
				}
			}
			So(keys, ShouldResemble, []string{
				"win_rates", "head_to_head", "winning_combinations", "game_lengths",
				"longest_games", "tie_statistics", "win_streaks", "elo_ratings",
			})
			So(charted, ShouldResemble, []string{
				"win_rates", "winning_combinations", "game_lengths", "win_streaks", "elo_ratings",
			})
		})

		Convey("Then labeling functions build display strings from rows", func() {
			table := NewTable("winner", "loser", "wins")
			table.Append("alpha", "bravo", int64(2))
			for _, sec := range sections {
				if sec.Key == "winning_combinations" {
					So(sec.Chart.Label(table.Rows[0]), ShouldEqual, "alpha vs bravo")
					So(sec.Chart.Value(table.Rows[0]), ShouldEqual, 2.0)
					So(sec.Chart.Limit, ShouldEqual, 10)
				}
			}
		})
	})
}
