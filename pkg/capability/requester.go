package capability

// Requester issues user-facing capability prompts.
//
// Each callback is invoked at most once, possibly on another goroutine. A
// prompt dismissed without any system signal may never call back; Gate can
// bound that wait with a timeout.
type Requester interface {
	// RequestLocationPermission shows the OS permission dialog. An
	// indeterminate system answer must be reported as denied.
	RequestLocationPermission(onResult func(granted bool))

	// RequestRadioPowerOn shows the enable-radio prompt and reports whether
	// the user accepted it.
	RequestRadioPowerOn(onResult func(accepted bool))

	// OpenLocationSettings navigates to the location settings screen. There
	// is no completion; callers re-probe later.
	OpenLocationSettings()
}

// Prompt identifies the kind of a capability prompt.
type Prompt uint8

const (
	// PromptLocationPermission is the OS permission dialog.
	PromptLocationPermission Prompt = iota

	// PromptRadioPower is the enable-radio prompt.
	PromptRadioPower

	// PromptLocationSettings is navigation to the location settings screen.
	PromptLocationSettings
)

// String returns the prompt name.
func (p Prompt) String() string {
	switch p {
	case PromptLocationPermission:
		return "LOCATION_PERMISSION"
	case PromptRadioPower:
		return "RADIO_POWER"
	case PromptLocationSettings:
		return "LOCATION_SETTINGS"
	default:
		return "UNKNOWN"
	}
}
