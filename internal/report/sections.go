package report

// Section is one fixed report query with an optional chart.
type Section struct {
	// Key names the chart file (plots/<key>.png).
	Key   string
	Title string
	Query string
	Chart *ChartSpec
}

// ChartSpec describes how a section table is drawn as a bar chart.
type ChartSpec struct {
	Title      string
	Label      func(Row) string
	Value      func(Row) float64
	ValueAxis  string
	Horizontal bool
	// Limit caps the number of bars; zero draws every row.
	Limit int
	// Width and Height are in inches.
	Width  float64
	Height float64
}

func column(name string) func(Row) string {
	return func(r Row) string { return r.String(name) }
}

func versus(a, b string) func(Row) string {
	return func(r Row) string { return r.String(a) + " vs " + r.String(b) }
}

func number(name string) func(Row) float64 {
	return func(r Row) float64 { return r.Float(name) }
}

const winRatesQuery = `
SELECT
    m.player_a,
    COUNT(CASE WHEN g.winner = 'player_a' THEN 1 END) AS wins,
    COUNT(*) AS total_games,
    ROUND(CAST(COUNT(CASE WHEN g.winner = 'player_a' THEN 1 END) AS REAL) / COUNT(*) * 100, 2) AS win_percentage
FROM matchups m
JOIN games g ON m.id = g.matchup_id
GROUP BY m.player_a
ORDER BY win_percentage DESC, m.player_a`

const headToHeadQuery = `
SELECT
    m.player_a,
    m.player_b,
    COUNT(CASE WHEN g.winner = 'player_a' THEN 1 END) AS player_a_wins,
    COUNT(CASE WHEN g.winner = 'player_b' THEN 1 END) AS player_b_wins,
    COUNT(CASE WHEN g.winner = 'tie' THEN 1 END) AS ties,
    COUNT(*) AS total_games
FROM matchups m
JOIN games g ON m.id = g.matchup_id
GROUP BY m.player_a, m.player_b
ORDER BY total_games DESC, m.player_a, m.player_b`

const winningCombinationsQuery = `
WITH decisive AS (
    SELECT
        CASE WHEN g.winner = 'player_a' THEN m.player_a ELSE m.player_b END AS winner,
        CASE WHEN g.winner = 'player_a' THEN m.player_b ELSE m.player_a END AS loser
    FROM matchups m
    JOIN games g ON m.id = g.matchup_id
    WHERE g.winner IN ('player_a', 'player_b')
)
SELECT winner, loser, COUNT(*) AS wins
FROM decisive
GROUP BY winner, loser
ORDER BY wins DESC, winner, loser`

const gameLengthsQuery = `
SELECT
    m.player_a,
    m.player_b,
    ROUND(AVG(t.turn_count), 2) AS avg_game_length
FROM matchups m
JOIN games g ON m.id = g.matchup_id
JOIN (
    SELECT game_id, MAX(turn_number) + 1 AS turn_count
    FROM turns
    GROUP BY game_id
) t ON g.id = t.game_id
GROUP BY m.player_a, m.player_b
ORDER BY avg_game_length DESC, m.player_a, m.player_b`

const longestGamesQuery = `
SELECT
    m.player_a,
    m.player_b,
    g.id AS game_id,
    MAX(t.turn_number) + 1 AS game_length,
    g.winner
FROM matchups m
JOIN games g ON m.id = g.matchup_id
JOIN turns t ON g.id = t.game_id
GROUP BY g.id
ORDER BY game_length DESC, g.id
LIMIT 10`

const tieStatisticsQuery = `
SELECT
    m.player_a,
    m.player_b,
    COUNT(CASE WHEN g.winner = 'tie' THEN 1 END) AS tie_count,
    ROUND(CAST(COUNT(CASE WHEN g.winner = 'tie' THEN 1 END) AS REAL) / COUNT(*) * 100, 2) AS tie_percentage
FROM matchups m
JOIN games g ON m.id = g.matchup_id
GROUP BY m.player_a, m.player_b
HAVING tie_count > 0
ORDER BY tie_count DESC, m.player_a, m.player_b`

const winStreaksQuery = `
WITH ordered AS (
    SELECT
        g.id,
        CASE
            WHEN g.winner = 'player_a' THEN m.player_a
            WHEN g.winner = 'player_b' THEN m.player_b
        END AS player,
        ROW_NUMBER() OVER (ORDER BY g.id) AS game_pos
    FROM games g
    JOIN matchups m ON g.matchup_id = m.id
),
wins AS (
    SELECT
        player,
        game_pos - ROW_NUMBER() OVER (PARTITION BY player ORDER BY game_pos) AS streak_group
    FROM ordered
    WHERE player IS NOT NULL
)
SELECT player, COUNT(*) AS streak_length
FROM wins
GROUP BY player, streak_group
HAVING COUNT(*) > 1
ORDER BY streak_length DESC, player
LIMIT 10`

const eloRatingsQuery = `
WITH players AS (
    SELECT player_a AS player_name FROM matchups
    UNION
    SELECT player_b FROM matchups
)
SELECT
    p.player_name,
    1500 + COALESCE(SUM(
        CASE
            WHEN g.winner = 'player_a' AND m.player_a = p.player_name THEN 32
            WHEN g.winner = 'player_b' AND m.player_b = p.player_name THEN 32
            WHEN g.winner IN ('player_a', 'player_b') THEN -32
            ELSE 0
        END
    ), 0) AS final_elo
FROM players p
LEFT JOIN matchups m ON p.player_name IN (m.player_a, m.player_b)
LEFT JOIN games g ON m.id = g.matchup_id
GROUP BY p.player_name
ORDER BY final_elo DESC, p.player_name`

// Sections returns the report sections in the order they are rendered.
func Sections() []Section {
	return []Section{
		{
			Key:   "win_rates",
			Title: "Win Rates",
			Query: winRatesQuery,
			Chart: &ChartSpec{
				Title:     "Player Win Rates",
				Label:     column("player_a"),
				Value:     number("win_percentage"),
				ValueAxis: "Win Rate (%)",
				Width:     12,
				Height:    6,
			},
		},
		{
			Key:   "head_to_head",
			Title: "Head-to-Head Statistics",
			Query: headToHeadQuery,
		},
		{
			Key:   "winning_combinations",
			Title: "Most Common Winning Combinations",
			Query: winningCombinationsQuery,
			Chart: &ChartSpec{
				Title:     "Top 10 Winning Combinations",
				Label:     versus("winner", "loser"),
				Value:     number("wins"),
				ValueAxis: "Wins",
				Limit:     10,
				Width:     12,
				Height:    6,
			},
		},
		{
			Key:   "game_lengths",
			Title: "Game Lengths",
			Query: gameLengthsQuery,
			Chart: &ChartSpec{
				Title:      "Average Game Length by Matchup",
				Label:      versus("player_a", "player_b"),
				Value:      number("avg_game_length"),
				ValueAxis:  "Average Turns",
				Horizontal: true,
				Width:      12,
				Height:     6,
			},
		},
		{
			Key:   "longest_games",
			Title: "Longest Games",
			Query: longestGamesQuery,
		},
		{
			Key:   "tie_statistics",
			Title: "Tie Statistics",
			Query: tieStatisticsQuery,
		},
		{
			Key:   "win_streaks",
			Title: "Win Streaks",
			Query: winStreaksQuery,
			Chart: &ChartSpec{
				Title:     "Longest Win Streaks",
				Label:     column("player"),
				Value:     number("streak_length"),
				ValueAxis: "Streak Length",
				Width:     10,
				Height:    6,
			},
		},
		{
			Key:   "elo_ratings",
			Title: "ELO Ratings",
			Query: eloRatingsQuery,
			Chart: &ChartSpec{
				Title:     "Player ELO Ratings",
				Label:     column("player_name"),
				Value:     number("final_elo"),
				ValueAxis: "ELO Rating",
				Width:     10,
				Height:    6,
			},
		},
	}
}
