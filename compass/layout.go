package compass

// Layout is the fixed scene contract between the add-on and the host scene.
type Layout struct {
	HUDPath              string
	PlayerPath           string
	CullingReferencePath string // relative to the HUD root
	PrefabName           string
	NeedleName           string
	// CompassZ is the compass root's local z offset in front of the HUD.
	CompassZ float64
}

func DefaultLayout() Layout {
	return Layout{
		HUDPath:              "__SYSTEM/HUD",
		PlayerPath:           "__SYSTEM/FPS Home/FPSController - Prince",
		CullingReferencePath: "Steps/Steps Icon",
		PrefabName:           "Compass Mod HUD",
		NeedleName:           "Compass Needle",
		CompassZ:             27.46,
	}
}
