package torrentx

import "strconv"

// EpisodeQuery builds the search text for episodic content, zero-padded
// to two digits: "Breaking Bad", 1, 1 -> "Breaking Bad S01E01".
func EpisodeQuery(title string, season, episode int) string {
	return title + " S" + pad2(season) + "E" + pad2(episode)
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
