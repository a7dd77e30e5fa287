package catalog

import (
	"errors"
	"strings"
)

// ErrISOCodeNotFound is returned when a language code has no entry in the
// ISO-639 mapping table.
var ErrISOCodeNotFound = errors.New("iso language code not found")

// isoThreeToTwo maps 3-letter ISO-639-2/T codes to their 2-letter ISO-639-1
// counterparts. Taken from https://en.wikipedia.org/wiki/List_of_ISO_639-1_codes
var isoThreeToTwo = map[string]string{
	"abk": "ab",
	"aar": "aa",
	"afr": "af",
	"aka": "ak",
	"sqi": "sq",
	"amh": "am",
	"ara": "ar",
	"arg": "an",
	"hye": "hy",
	"asm": "as",
	"ava": "av",
	"ave": "ae",
	"aym": "ay",
	"aze": "az",
	"bam": "bm",
	"bak": "ba",
	"eus": "eu",
	"bel": "be",
	"ben": "bn",
	"bis": "bi",
	"bos": "bs",
	"bre": "br",
	"bul": "bg",
	"mya": "my",
	"cat": "ca",
	"cha": "ch",
	"che": "ce",
	"nya": "ny",
	"zho": "zh",
	"chu": "cu",
	"chv": "cv",
	"cor": "kw",
	"cos": "co",
	"cre": "cr",
	"hrv": "hr",
	"ces": "cs",
	"dan": "da",
	"div": "dv",
	"nld": "nl",
	"dzo": "dz",
	"eng": "en",
	"epo": "eo",
	"est": "et",
	"ewe": "ee",
	"fao": "fo",
	"fij": "fj",
	"fin": "fi",
	"fra": "fr",
	"fry": "fy",
	"ful": "ff",
	"gla": "gd",
	"glg": "gl",
	"lug": "lg",
	"kat": "ka",
	"deu": "de",
	"ell": "el",
	"kal": "kl",
	"grn": "gn",
	"guj": "gu",
	"hat": "ht",
	"hau": "ha",
	"heb": "he",
	"her": "hz",
	"hin": "hi",
	"hmo": "ho",
	"hun": "hu",
	"isl": "is",
	"ido": "io",
	"ibo": "ig",
	"ind": "id",
	"ina": "ia",
	"ile": "ie",
	"iku": "iu",
	"ipk": "ik",
	"gle": "ga",
	"ita": "it",
	"jpn": "ja",
	"jav": "jv",
	"kan": "kn",
	"kau": "kr",
	"kas": "ks",
	"kaz": "kk",
	"khm": "km",
	"kik": "ki",
	"kin": "rw",
	"kir": "ky",
	"kom": "kv",
	"kon": "kg",
	"kor": "ko",
	"kua": "kj",
	"kur": "ku",
	"lao": "lo",
	"lat": "la",
	"lav": "lv",
	"lim": "li",
	"lin": "ln",
	"lit": "lt",
	"lub": "lu",
	"ltz": "lb",
	"mkd": "mk",
	"mlg": "mg",
	"msa": "ms",
	"mal": "ml",
	"mlt": "mt",
	"glv": "gv",
	"mri": "mi",
	"mar": "mr",
	"mah": "mh",
	"mon": "mn",
	"nau": "na",
	"nav": "nv",
	"nde": "nd",
	"nbl": "nr",
	"ndo": "ng",
	"nep": "ne",
	"nor": "no",
	"nob": "nb",
	"nno": "nn",
	"iii": "ii",
	"oci": "oc",
	"oji": "oj",
	"ori": "or",
	"orm": "om",
	"oss": "os",
	"pli": "pi",
	"pus": "ps",
	"fas": "fa",
	"pol": "pl",
	"por": "pt",
	"pan": "pa",
	"que": "qu",
	"ron": "ro",
	"roh": "rm",
	"run": "rn",
	"rus": "ru",
	"sme": "se",
	"smo": "sm",
	"sag": "sg",
	"san": "sa",
	"srd": "sc",
	"srp": "sr",
	"sna": "sn",
	"snd": "sd",
	"sin": "si",
	"slk": "sk",
	"slv": "sl",
	"som": "so",
	"sot": "st",
	"spa": "es",
	"sun": "su",
	"swa": "sw",
	"ssw": "ss",
	"swe": "sv",
	"tgl": "tl",
	"tah": "ty",
	"tgk": "tg",
	"tam": "ta",
	"tat": "tt",
	"tel": "te",
	"tha": "th",
	"bod": "bo",
	"tir": "ti",
	"ton": "to",
	"tso": "ts",
	"tsn": "tn",
	"tur": "tr",
	"tuk": "tk",
	"twi": "tw",
	"uig": "ug",
	"ukr": "uk",
	"urd": "ur",
	"uzb": "uz",
	"ven": "ve",
	"vie": "vi",
	"vol": "vo",
	"wln": "wa",
	"cym": "cy",
	"wol": "wo",
	"xho": "xh",
	"yid": "yi",
	"yor": "yo",
	"zha": "za",
	"zul": "zu",
}

// isoTwoToThree is the inverse of isoThreeToTwo, built once at startup.
var isoTwoToThree = func() map[string]string {
	m := make(map[string]string, len(isoThreeToTwo))
	for three, two := range isoThreeToTwo {
		m[two] = three
	}
	return m
}()

// ThreeLetterCode returns the 3-letter ISO-639 code for a 2-letter code.
// Input is case-insensitive.
func ThreeLetterCode(twoLetter string) (string, error) {
	code, ok := isoTwoToThree[strings.ToLower(twoLetter)]
	if !ok {
		return "", ErrISOCodeNotFound
	}
	return code, nil
}

// TwoLetterCode returns the 2-letter ISO-639 code for a 3-letter code.
// Input is case-insensitive.
func TwoLetterCode(threeLetter string) (string, error) {
	code, ok := isoThreeToTwo[strings.ToLower(threeLetter)]
	if !ok {
		return "", ErrISOCodeNotFound
	}
	return code, nil
}
