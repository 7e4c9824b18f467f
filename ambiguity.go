package latticedecoder

// AmbiguityFlag selects which fuzzy initial/final substitutions a
// fuzzy expansion pass honors. Flags combine with bitwise OR, mirroring
// the pinyin_option_t bit assignment they're grounded on.
type AmbiguityFlag uint32

const (
	AmbCCH  AmbiguityFlag = 1 << 9
	AmbSSH  AmbiguityFlag = 1 << 10
	AmbZZH  AmbiguityFlag = 1 << 11
	AmbFH   AmbiguityFlag = 1 << 12
	AmbGK   AmbiguityFlag = 1 << 13
	AmbLN   AmbiguityFlag = 1 << 14
	AmbLR   AmbiguityFlag = 1 << 15
	AmbANANG AmbiguityFlag = 1 << 16
	AmbENENG AmbiguityFlag = 1 << 17
	AmbINING AmbiguityFlag = 1 << 18

	AmbAll AmbiguityFlag = 0x3FF << 9
)

type initialPair struct {
	flag        AmbiguityFlag
	from, to    ChewingInitial
}

var fuzzyInitials = []initialPair{
	{AmbCCH, InitialC, InitialCH},
	{AmbCCH, InitialCH, InitialC},
	{AmbZZH, InitialZ, InitialZH},
	{AmbZZH, InitialZH, InitialZ},
	{AmbSSH, InitialS, InitialSH},
	{AmbSSH, InitialSH, InitialS},
	{AmbLR, InitialL, InitialR},
	{AmbLR, InitialR, InitialL},
	{AmbLN, InitialL, InitialN},
	{AmbLN, InitialN, InitialL},
	{AmbFH, InitialF, InitialH},
	{AmbFH, InitialH, InitialF},
	{AmbGK, InitialG, InitialK},
	{AmbGK, InitialK, InitialG},
}

type finalPair struct {
	flag     AmbiguityFlag
	from, to ChewingFinal
}

var fuzzyFinals = []finalPair{
	{AmbANANG, FinalAN, FinalANG},
	{AmbANANG, FinalANG, FinalAN},
	{AmbENENG, FinalEN, FinalENG},
	{AmbENENG, FinalENG, FinalEN},
	{AmbINING, FinalIN, FinalING},
	{AmbINING, FinalING, FinalIN},
}

// fuzzyInitialVariants returns the keys reachable from key by a single
// enabled initial substitution. A variant with a resulting zero table
// index (an inherently invalid initial/final/middle combination) is
// dropped.
func fuzzyInitialVariants(options AmbiguityFlag, key ChewingKey) []ChewingKey {
	var out []ChewingKey
	for _, p := range fuzzyInitials {
		if options&p.flag == 0 || key.Initial != p.from {
			continue
		}
		nk := key
		nk.Initial = p.to
		if nk.tableIndex() != 0 {
			out = append(out, nk)
		}
	}
	return out
}

// fuzzyFinalVariants returns the keys reachable from key by a single
// enabled final substitution. Unlike fuzzyInitialVariants, no table
// index guard applies here.
func fuzzyFinalVariants(options AmbiguityFlag, key ChewingKey) []ChewingKey {
	var out []ChewingKey
	for _, p := range fuzzyFinals {
		if options&p.flag == 0 || key.Final != p.from {
			continue
		}
		nk := key
		nk.Final = p.to
		out = append(out, nk)
	}
	return out
}

// tableIndex is a coarse validity probe: a zero result means the
// (initial, middle, final) combination cannot back a real syllable.
// Chewing tables key lookups on a dense index derived from this triple;
// this rewrite only needs the "is it zero" distinction fuzzy expansion
// relies on, not the dense index itself.
func (k ChewingKey) tableIndex() uint32 {
	if k.Initial == InitialZero && k.Middle == MiddleZero && k.Final == FinalZero {
		return 0
	}
	return uint32(k.Initial)<<10 | uint32(k.Middle)<<6 | uint32(k.Final)
}
