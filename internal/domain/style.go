package domain

// Status colors. FallbackColor covers missing and unrecognised statuses.
const (
	ColorUnderfishing           = "#2ecc71"
	ColorUncertain              = "#95a5a6"
	ColorOverfishing            = "#e74c3c"
	ColorGrowthOverfishing      = "#f1c40f"
	ColorRecruitmentOverfishing = "#e67e22"
	FallbackColor               = "#dcdcdc"
)

// NoDataLabel is shown in place of a missing status.
const NoDataLabel = "No Data"

// StatusStyle is one entry of the status table.
type StatusStyle struct {
	Status string
	Label  string
	Color  string
}

var statusStyles = []StatusStyle{
	{Status: "UNDERFISHING", Label: "Underfishing", Color: ColorUnderfishing},
	{Status: "UNCERTAIN", Label: "Uncertain", Color: ColorUncertain},
	{Status: "DATA DEFICIENT", Label: "Data Deficient", Color: ColorUncertain},
	{Status: "OVERFISHING", Label: "Overfishing", Color: ColorOverfishing},
	{Status: "GROWTH OVERFISHING", Label: "Growth Overfishing", Color: ColorGrowthOverfishing},
	{Status: "RECRUITMENT OVERFISHING", Label: "Recruitment Overfishing", Color: ColorRecruitmentOverfishing},
}

// StatusTable returns the status table in legend order.
func StatusTable() []StatusStyle {
	return append([]StatusStyle(nil), statusStyles...)
}

// ColorFor maps a status label to its color, case-insensitively.
func ColorFor(status string) string {
	key := NormalizeKey(status)
	for _, s := range statusStyles {
		if s.Status == key {
			return s.Color
		}
	}
	return FallbackColor
}

// DisplayStatus returns the label to show for a status.
func DisplayStatus(status string) string {
	if status == "" {
		return NoDataLabel
	}
	return status
}

// StyleFor returns the display label and color of a status.
func StyleFor(status string) (label, color string) {
	return DisplayStatus(status), ColorFor(status)
}
