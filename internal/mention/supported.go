package mention

// DefaultSupportedCodes returns the language codes eligible for mention
// matching. Languages with very short or generic localized names ("Fulah",
// "Kom", "Root") trigger false positives on ordinary words, so matching is
// limited to this set unless overridden through configuration.
func DefaultSupportedCodes() []string {
	return []string{
		"sq", "aln", "arq", "en_US", "es_419", "en", "ar", "shu", "arc", "en_AU", "de_AT", "bar",
		"be", "bs", "pt_BR", "en_GB", "bg", "zh", "zh_Hant", "zh_Hans", "lzh", "hr", "ce",
		"cs", "dak", "nds", "sli", "da", "dz", "et", "es_ES", "pt_PT", "fi", "fr",
		"el", "kl", "ka", "haw", "he", "hi", "hif", "es", "id", "ga", "is",
		"ja", "en_CA", "fr_CA", "kk", "ko", "lt", "lb", "la", "lv", "mk", "es_MX",
		"ro_MD", "ne", "nl", "de", "no", "nb", "nn", "pfl", "fa", "pl", "pt",
		"prg", "ru", "ro", "rue", "sr", "sh", "sk", "sl", "sco", "gd", "fr_CH",
		"gsw", "sv", "th", "uk", "cy", "vec", "hu", "vi", "it", "zea",
	}
}
