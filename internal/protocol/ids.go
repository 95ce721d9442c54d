package protocol

// Clientbound play identifiers of the scoreboard packets on the newest
// release of each version line. Hosts running another patch release override
// them through config.
var builtinIDs = map[Version]TableResolver{
	V1_12: {
		KindDisplayObjective: 0x3B,
		KindObjective:        0x42,
		KindTeam:             0x44,
		KindScore:            0x45,
	},
	V1_13: {
		KindDisplayObjective: 0x3E,
		KindObjective:        0x45,
		KindTeam:             0x47,
		KindScore:            0x48,
	},
	V1_16: {
		KindDisplayObjective: 0x43,
		KindObjective:        0x4A,
		KindTeam:             0x4C,
		KindScore:            0x4D,
	},
	V1_20: {
		KindDisplayObjective: 0x51,
		KindObjective:        0x5A,
		KindTeam:             0x5C,
		KindScore:            0x5D,
	},
	V1_20_2: {
		KindDisplayObjective: 0x53,
		KindObjective:        0x5C,
		KindTeam:             0x5E,
		KindScore:            0x5F,
	},
	V1_20_3: {
		KindDisplayObjective: 0x55,
		KindObjective:        0x5E,
		KindTeam:             0x60,
		KindScore:            0x61,
		KindResetScore:       0x42,
	},
}

// BuiltinIDs returns a copy of the bundled identifier table for v. Unknown
// versions yield an empty table, which fails registry construction.
func BuiltinIDs(v Version) TableResolver {
	return builtinIDs[v].Merge(nil)
}
