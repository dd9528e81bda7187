package domain

// NoDataInfo is the popup text of a region without records for the filter.
const NoDataInfo = "Tidak ada data ikan untuk filter ini."

// JoinRegions left-joins regions to province summaries on the key attribute.
// Every region is kept; unmatched ones get the no-data style.
func JoinRegions(regions []Region, key string, summaries []ProvinceSummary) []StyledRegion {
	byProvince := make(map[string]ProvinceSummary, len(summaries))
	for _, s := range summaries {
		k := NormalizeKey(s.Province)
		if _, ok := byProvince[k]; !ok {
			byProvince[k] = s
		}
	}

	styled := make([]StyledRegion, 0, len(regions))
	for _, region := range regions {
		province := NormalizeKey(region.Attr(key))
		summary, ok := byProvince[province]
		if !ok {
			styled = append(styled, StyledRegion{
				Region:   region,
				Province: province,
				Status:   NoDataLabel,
				Color:    FallbackColor,
				InfoText: NoDataInfo,
			})
			continue
		}

		label, color := StyleFor(summary.Status)
		styled = append(styled, StyledRegion{
			Region:   region,
			Province: province,
			Status:   label,
			Color:    color,
			InfoText: summary.InfoText,
			Matched:  true,
		})
	}
	return styled
}

// UnmatchedProvinces returns summary provinces that no region carries.
func UnmatchedProvinces(regions []Region, key string, summaries []ProvinceSummary) []string {
	present := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		present[NormalizeKey(r.Attr(key))] = struct{}{}
	}
	var missing []string
	for _, s := range summaries {
		if _, ok := present[NormalizeKey(s.Province)]; !ok {
			missing = append(missing, s.Province)
		}
	}
	return missing
}
