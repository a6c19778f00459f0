package card

// Difficulty levels as the judge encodes them: 1..7 rated, 0 unrated.
const unratedLevel = 0

// barLevels is the fixed display order of the difficulty histogram, unrated
// last.
var barLevels = []int{1, 2, 3, 4, 5, 6, 7, unratedLevel}

// difficultyNames are the judge's difficulty tier names.
var difficultyNames = map[int]string{
	unratedLevel: "暂未评级",
	1:            "入门",
	2:            "普及-",
	3:            "普及/提高-",
	4:            "普及+/提高",
	5:            "提高+/省选",
	6:            "省选/NOI-",
	7:            "NOI/NOI+/CTSC",
}

// levelColors maps each barLevels slot to its tier color, gray for unrated.
var levelColors = []string{
	"#fe4c61", // 入门
	"#f39c11", // 普及-
	"#ffc116", // 普及/提高-
	"#52c41a", // 普及+/提高
	"#3498db", // 提高+/省选
	"#9d3dcf", // 省选/NOI-
	"#0e1d69", // NOI/NOI+/CTSC
	"#bfbfbf", // 暂未评级
}

// nameColors maps the judge's username color keys to hex values.
var nameColors = map[string]string{
	"Gray":    "#bbbbbb",
	"Blue":    "#0e90d2",
	"Green":   "#5eb95e",
	"Orange":  "#e67e22",
	"Red":     "#e74c3c",
	"Purple":  "#9d3dcf",
	"Cheater": "#ad8b00",
}

const defaultNameColor = "#bbbbbb"

// prizeColors maps medal tiers to display colors.
var prizeColors = map[string]string{
	"first":  "#e6b800",
	"second": "#a0a0a8",
	"third":  "#b87333",
	"other":  "#0e90d2",
}
