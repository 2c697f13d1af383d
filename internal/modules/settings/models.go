package settings

import (
	"github.com/aristath/resourceplan/internal/modules/capacity"
)

// SettingDefaults holds the default value of every recognised setting.
// Numeric settings are float64, string settings are string.
var SettingDefaults = map[string]interface{}{
	// Categorization thresholds (percent of period capacity)
	KeyUntappedBelowPct: capacity.DefaultThresholds().UntappedBelowPct,
	KeyWarningAbovePct:  capacity.DefaultThresholds().WarningAbovePct,
	KeyCriticalAbovePct: capacity.DefaultThresholds().CriticalAbovePct,

	// Minimum effective weekly hours for the untapped category
	KeyHighCapacityFloorHours: capacity.DefaultThresholds().HighCapacityFloorHours,

	// "auto" or "off"
	KeyCurrentDateAwareness: string(capacity.AwarenessAuto),
}

// StringSettings lists settings whose values are kept as strings
var StringSettings = map[string]bool{
	KeyCurrentDateAwareness: true,
}

// SettingDescriptions holds human-readable descriptions for all settings
var SettingDescriptions = map[string]string{
	KeyUntappedBelowPct:       "Utilization below which a high-capacity resource is reported as untapped",
	KeyWarningAbovePct:        "Utilization above which a resource is reported as near capacity",
	KeyCriticalAbovePct:       "Utilization above which a resource is reported as overallocated",
	KeyHighCapacityFloorHours: "Minimum effective weekly hours for the untapped category",
	KeyCurrentDateAwareness:   "Drop elapsed weeks from periods containing today (auto or off)",
}

// Setting is one recognised setting with its stored and default values
type Setting struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
	Overridden  bool        `json:"overridden"`
}
