// Package clips holds the static corpus of notable sports moments and a
// keyword search over it. The corpus is defined at process start and never
// mutated.
package clips

import "sort"

// Clip is one notable sports moment
type Clip struct {
	ID          string
	Keywords    []string
	Title       string
	Description string
	YouTubeID   string
	Timestamp   int // start offset in seconds, 0 when unset
}

// Corpus is an ordered, read-only clip table. Iteration order is the
// definition order, which also serves as the search tie-break.
type Corpus struct {
	clips []Clip
	byID  map[string]*Clip
}

// New builds a corpus from the given clips.
func New(clips []Clip) *Corpus {
	c := &Corpus{clips: clips, byID: make(map[string]*Clip, len(clips))}
	for i := range c.clips {
		c.byID[c.clips[i].ID] = &c.clips[i]
	}
	return c
}

// Default returns the built-in corpus of infamous moments.
func Default() *Corpus {
	return New(defaultClips)
}

// ByID returns a clip by identifier, or nil when unknown.
func (c *Corpus) ByID(id string) *Clip {
	return c.byID[id]
}

// Len returns the number of clips in the corpus.
func (c *Corpus) Len() int {
	return len(c.clips)
}

// AllKeywords returns the de-duplicated, sorted keyword set across the corpus.
func (c *Corpus) AllKeywords() []string {
	seen := make(map[string]struct{})
	for _, clip := range c.clips {
		for _, kw := range clip.Keywords {
			seen[kw] = struct{}{}
		}
	}
	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

var defaultClips = []Clip{
	{
		ID:          "kawhi_bounce",
		Keywords:    []string{"kawhi", "bounce", "game 7", "76ers", "raptors", "2019", "playoff shot"},
		Title:       "Kawhi Leonard's Game 7 Buzzer Beater (2019)",
		Description: "Kawhi's shot bounced FOUR times on the rim before going in to beat the 76ers in Game 7. One of the most dramatic playoff moments ever.",
		YouTubeID:   "ChT3ewZXTfM",
	},
	{
		ID:          "jr_smith_2018",
		Keywords:    []string{"jr smith", "j.r. smith", "2018 finals", "game 1", "finals blunder", "forgot the score", "lebron"},
		Title:       "J.R. Smith's 2018 Finals Game 1 Blunder",
		Description: "With the game tied and seconds left, J.R. Smith grabbed the offensive rebound but dribbled away from the basket, seemingly forgetting the score. Cavaliers lost in overtime. LeBron's reaction says it all.",
		YouTubeID:   "0SCWLyqAx-U",
	},
	{
		ID:          "butt_fumble",
		Keywords:    []string{"butt fumble", "mark sanchez", "jets", "patriots", "thanksgiving"},
		Title:       "The Butt Fumble (2012)",
		Description: "Mark Sanchez ran into his own teammate's butt and fumbled on Thanksgiving. Possibly the most embarrassing play in NFL history.",
		YouTubeID:   "rAp57G1hLn0",
	},
	{
		ID:          "28_3",
		Keywords:    []string{"28-3", "28 3", "falcons", "patriots", "super bowl 51", "comeback", "atlanta"},
		Title:       "Patriots Overcome 28-3 Deficit - Super Bowl 51",
		Description: "The Falcons led 28-3 in the third quarter, but the Patriots completed the greatest comeback in Super Bowl history.",
		YouTubeID:   "4SiUNdkIpdM",
	},
	{
		ID:          "malice_palace",
		Keywords:    []string{"malice at the palace", "ron artest", "metta world peace", "pistons", "pacers", "brawl"},
		Title:       "Malice at the Palace (2004)",
		Description: "The biggest brawl in NBA history. Ron Artest (now Metta World Peace) went into the stands after a fan threw a drink at him.",
		YouTubeID:   "7cTZsv42s3g",
	},
	{
		ID:          "zidane_headbutt",
		Keywords:    []string{"zidane", "headbutt", "world cup", "2006", "materazzi", "final"},
		Title:       "Zidane's Headbutt - 2006 World Cup Final",
		Description: "In his final career match, Zinedine Zidane headbutted Marco Materazzi in the chest and was sent off. Italy went on to win the World Cup.",
		YouTubeID:   "zAjWy7UNjEw",
	},
	{
		ID:          "tyree_catch",
		Keywords:    []string{"david tyree", "helmet catch", "super bowl 42", "giants", "patriots", "18-1"},
		Title:       "David Tyree's Helmet Catch - Super Bowl 42",
		Description: "Tyree pinned the ball against his helmet while being tackled. This play helped the Giants beat the undefeated Patriots and ruin their perfect season.",
		YouTubeID:   "CxiHMK_lm2s",
	},
	{
		ID:          "ray_allen_corner_three",
		Keywords:    []string{"ray allen", "corner three", "game 6", "2013 finals", "heat", "spurs"},
		Title:       "Ray Allen's Game-Saving Three - 2013 Finals Game 6",
		Description: "With Miami down 3 and seconds left, Ray Allen hit the biggest three-pointer in Finals history to force overtime. Heat won the series.",
		YouTubeID:   "tr6XsZVb-ZE",
	},
	{
		ID:          "lebron_block",
		Keywords:    []string{"lebron block", "the block", "2016 finals", "igoudala", "iguodala", "chase down"},
		Title:       "LeBron's Block on Iguodala - 2016 Finals Game 7",
		Description: "The chase-down block that helped Cleveland win its first championship. One of the greatest defensive plays in Finals history.",
		YouTubeID:   "py0-l1M_870",
	},
	{
		ID:          "mariano_comeback",
		Keywords:    []string{"mariners", "mariano rivera", "1995", "comeback", "116 wins", "refuse to lose"},
		Title:       "1995 Mariners Refuse to Lose",
		Description: "Down 2-0 to the Yankees in the ALDS, the Mariners completed the comeback with Edgar Martinez's legendary double in Game 5.",
		YouTubeID:   "F8SBkGpd_EE",
	},
	{
		ID:          "beast_quake",
		Keywords:    []string{"beast quake", "marshawn lynch", "seahawks", "earthquake", "saints", "2011", "beastmode"},
		Title:       "Beast Quake - Marshawn Lynch (2011)",
		Description: "Marshawn Lynch's 67-yard touchdown run was so powerful it registered on a seismometer as an earthquake in Seattle.",
		YouTubeID:   "xSZdntRnQVg",
	},
	{
		ID:          "malcolm_butler",
		Keywords:    []string{"malcolm butler", "interception", "super bowl 49", "seahawks", "patriots", "goal line"},
		Title:       "Malcolm Butler's Super Bowl Interception",
		Description: "Instead of giving the ball to Marshawn Lynch, the Seahawks threw it. Malcolm Butler intercepted at the goal line, sealing the Patriots' win.",
		YouTubeID:   "fKOLqM-LnA0",
	},
	{
		ID:          "fail_mary",
		Keywords:    []string{"fail mary", "hail mary", "seahawks", "packers", "replacement refs", "touchdown"},
		Title:       "The Fail Mary (2012)",
		Description: "Replacement refs botched this call, giving the Seahawks a controversial touchdown on the final play against the Packers.",
		YouTubeID:   "wXGFZkIEMK0",
	},
	{
		ID:          "double_doink",
		Keywords:    []string{"double doink", "cody parkey", "bears", "eagles", "field goal", "2019 playoffs"},
		Title:       "The Double Doink",
		Description: "Cody Parkey's field goal attempt hit both the upright and crossbar before falling incomplete, ending the Bears' season.",
		YouTubeID:   "vgAV7idfR7E",
	},
	{
		ID:          "miracle_minneapolis",
		Keywords:    []string{"minneapolis miracle", "stefon diggs", "vikings", "saints", "2018", "case keenum"},
		Title:       "Minneapolis Miracle (2018)",
		Description: "Stefon Diggs caught the winning touchdown with no time left as the Saints safety missed the tackle. Vikings won on a walk-off TD.",
		YouTubeID:   "dzRRi2QcSEM",
	},
	{
		ID:          "lebron_dunk_on_terry",
		Keywords:    []string{"lebron", "jason terry", "dunk", "poster", "celtics"},
		Title:       "LeBron Posterizes Jason Terry",
		Description: "One of the most vicious dunks in playoffs history. Jason Terry tried to take a charge and immediately regretted it.",
		YouTubeID:   "V-QTiByTKaI",
	},
	{
		ID:          "kobe_81",
		Keywords:    []string{"kobe", "81 points", "raptors", "2006", "scoring"},
		Title:       "Kobe's 81-Point Game",
		Description: "Kobe Bryant's 81-point game against the Raptors in 2006. Second-highest scoring game in NBA history.",
		YouTubeID:   "sZWEM7XWzUM",
	},
	{
		ID:          "jordan_last_shot",
		Keywords:    []string{"jordan", "last shot", "1998", "jazz", "finals", "push off"},
		Title:       "Michael Jordan's Last Shot (1998 Finals)",
		Description: "MJ's final shot as a Bull. He pushed off Byron Russell and hit the championship-winning jumper.",
		YouTubeID:   "vyL0FxS-F6E",
	},
	{
		ID:          "wide_right",
		Keywords:    []string{"wide right", "scott norwood", "bills", "super bowl", "1991"},
		Title:       "Wide Right - Super Bowl 25",
		Description: "Scott Norwood missed a 47-yard field goal that would have won the Super Bowl for the Bills. It went wide right.",
		YouTubeID:   "9GZHH5-S7-w",
	},
}
