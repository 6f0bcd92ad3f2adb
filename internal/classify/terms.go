package classify

// Curated dictionaries for the French legal-recruitment domain. Terms are
// written in their natural form; the engine folds them (lowercase, no
// diacritics) at compile time, so "poste à pourvoir" also matches
// "poste a pourvoir".

// defaultRoleTerms are domain role titles — positive evidence of topical
// relevance. Multi-word terms are matched first and their spans removed, so
// "juriste fiscal" never also counts as a bare "juriste".
var defaultRoleTerms = []string{
	"juriste droit social",
	"juriste droit des affaires",
	"juriste droit des sociétés",
	"juriste droit public",
	"juriste propriété intellectuelle",
	"juriste protection des données",
	"juriste fiscal",
	"juriste fiscaliste",
	"juriste contrats",
	"juriste conformité",
	"juriste d'entreprise",
	"juriste immobilier",
	"juriste contentieux",
	"avocat fiscaliste",
	"avocat collaborateur",
	"avocat droit social",
	"avocat droit des affaires",
	"directeur juridique",
	"directrice juridique",
	"responsable juridique",
	"responsable conformité",
	"legal counsel",
	"general counsel",
	"head of legal",
	"legal officer",
	"compliance officer",
	"contract manager",
	"tax lawyer",
	"tax manager",
	"clerc de notaire",
	"juriste",
	"fiscaliste",
	"avocat",
	"avocate",
	"notaire",
	"paralegal",
}

// defaultGenericRoleTerms are low-specificity stems, used only when no real
// role term matched. A generic-only match carries a score penalty.
var defaultGenericRoleTerms = []string{
	"juridique",
	"droit",
	"fiscal",
	"fiscalité",
	"legal",
	"contentieux",
}

// defaultRecruitmentTerms signal active hiring intent.
var defaultRecruitmentTerms = []string{
	"nous recrutons",
	"on recrute",
	"nous recherchons",
	"recrutement d'un",
	"recrutement d'une",
	"recrute",
	"poste à pourvoir",
	"offre d'emploi",
	"rejoignez notre équipe",
	"rejoindre notre équipe",
	"rejoindre nos équipes",
	"we are hiring",
	"we're hiring",
	"is hiring",
	"join our team",
	"cdi",
	"cdd",
	"candidature",
	"postulez",
	"postuler",
	"envoyez votre cv",
	"send your cv",
	"apply now",
	"job opening",
	"cherchons un",
	"cherchons une",
	"recherche un",
	"recherche une",
}

// defaultNegativeContextTerms mark informational, non-recruitment content.
var defaultNegativeContextTerms = []string{
	"article d'opinion",
	"billet de blog",
	"blog post",
	"tribune",
	"webinaire",
	"webinar",
	"podcast",
	"newsletter",
	"retour d'expérience",
	"sans offre d'emploi",
	"pas une offre",
	"ceci n'est pas une offre",
	"no job offer",
	"article",
	"décryptage",
	"point de vue",
}

// defaultAgencyTerms indicate a third-party recruiter rather than a direct
// employer.
var defaultAgencyTerms = []string{
	"notre client",
	"our client",
	"pour notre client",
	"pour le compte de notre client",
	"cabinet de recrutement",
	"agence de recrutement",
	"recruitment firm",
	"recruitment agency",
	"staffing",
	"chasseur de têtes",
	"headhunter",
	"agence d'intérim",
	"client final",
}

// defaultStageTerms indicate internship/apprenticeship positions.
var defaultStageTerms = []string{
	"stage de fin d'études",
	"contrat d'apprentissage",
	"contrat de professionnalisation",
	"stage",
	"stagiaire",
	"alternance",
	"alternant",
	"alternante",
	"apprentissage",
	"apprenti",
	"apprentie",
	"internship",
	"intern",
	"césure",
}

// defaultPositiveLocations are acceptable locations; defaultNegativeLocations
// mark out-of-scope markets. Location is acceptable when a positive term is
// present OR no negative term is present.
var defaultPositiveLocations = []string{
	"paris",
	"lyon",
	"marseille",
	"lille",
	"bordeaux",
	"nantes",
	"toulouse",
	"strasbourg",
	"nice",
	"rennes",
	"montpellier",
	"grenoble",
	"île-de-france",
	"ile de france",
	"la défense",
	"france",
	"télétravail",
	"full remote",
	"remote",
	"hybride",
}

var defaultNegativeLocations = []string{
	"london",
	"londres",
	"new york",
	"dubai",
	"dubaï",
	"genève",
	"geneva",
	"zurich",
	"luxembourg",
	"bruxelles",
	"brussels",
	"casablanca",
	"montréal",
	"singapore",
	"singapour",
	"hong kong",
}
