package settings

import "fmt"

// Working partitions for FERC Form 1 data as published in the processed
// PUDL tables.
var (
	Ferc1WorkingYears = yearRange(1994, 2020)

	Ferc1WorkingTables = []string{
		"fuel_ferc1",
		"plant_in_service_ferc1",
		"plants_hydro_ferc1",
		"plants_pumped_storage_ferc1",
		"plants_small_ferc1",
		"plants_steam_ferc1",
		"purchased_power_ferc1",
	}
)

// Ferc1Settings selects the FERC Form 1 years and tables to process.
type Ferc1Settings struct {
	Years  []int    `yaml:"years"`
	Tables []string `yaml:"tables"`
}

// Validate checks the requested partitions against the working set and
// normalizes them in place (sorted, de-duplicated, defaulted when omitted).
func (s *Ferc1Settings) Validate() error {
	years, err := normalizePartition("ferc1", "years", s.Years, Ferc1WorkingYears)
	if err != nil {
		return err
	}
	tables, err := normalizePartition("ferc1", "tables", s.Tables, Ferc1WorkingTables)
	if err != nil {
		return err
	}
	s.Years = years
	s.Tables = tables
	return nil
}

// Ferc1DBFWorkingTables is the inventory of tables in the raw FERC Form 1
// FoxPro/DBF databases. The raw-archive conversion can pull any of these,
// not just the subset that feeds the processed FERC1 tables.
var Ferc1DBFWorkingTables = []string{
	"f1_accumdepr_prvsn",
	"f1_accumdfrrdtaxcr",
	"f1_adit_190_detail",
	"f1_adit_190_notes",
	"f1_adit_amrt_prop",
	"f1_adit_other",
	"f1_adit_other_prop",
	"f1_allowances",
	"f1_allowances_nox",
	"f1_bal_sheet_cr",
	"f1_capital_stock",
	"f1_cash_flow",
	"f1_cmmn_utlty_p_e",
	"f1_cmpinc_hedge",
	"f1_cmpinc_hedge_a",
	"f1_co_directors",
	"f1_comp_balance_db",
	"f1_construction",
	"f1_control_respdnt",
	"f1_cptl_stk_expns",
	"f1_csscslc_pcsircs",
	"f1_dacs_epda",
	"f1_dscnt_cptl_stk",
	"f1_edcfu_epda",
	"f1_elc_op_mnt_expn",
	"f1_elc_oper_rev_nb",
	"f1_elctrc_erg_acct",
	"f1_elctrc_oper_rev",
	"f1_electric",
	"f1_envrnmntl_expns",
	"f1_envrnmntl_fclty",
	"f1_fuel",
	"f1_general_info",
	"f1_gnrt_plant",
	"f1_hydro",
	"f1_important_chg",
	"f1_incm_stmnt_2",
	"f1_income_stmnt",
	"f1_leased",
	"f1_long_term_debt",
	"f1_misc_dfrrd_dr",
	"f1_miscgen_expn_elc",
	"f1_mthly_peak_otpt",
	"f1_mtrl_spply",
	"f1_nbr_elc_deptemp",
	"f1_nonutility_prop",
	"f1_nuclear_fuel",
	"f1_officers_co",
	"f1_othr_dfrrd_cr",
	"f1_othr_pd_in_cptl",
	"f1_othr_reg_assets",
	"f1_othr_reg_liab",
	"f1_overhead",
	"f1_pccidica",
	"f1_plant",
	"f1_plant_in_srvce",
	"f1_pumped_storage",
	"f1_purchased_pwr",
	"f1_r_d_demo_actvty",
	"f1_respdnt_control",
	"f1_respondent_id",
	"f1_retained_erng",
	"f1_sale_for_resale",
	"f1_sales_by_sched",
	"f1_sbsdry_detail",
	"f1_sbsdry_totals",
	"f1_sched_lit_tbl",
	"f1_security_holders",
	"f1_slry_wg_dstrbtn",
	"f1_steam",
	"f1_substations",
	"f1_taxacc_ppchrgyr",
	"f1_unrcvrd_cost",
	"f1_utltyplnt_smmry",
	"f1_work",
	"f1_xmssn_adds",
	"f1_xmssn_elc_bothr",
	"f1_xmssn_elc_fothr",
	"f1_xmssn_line",
	"f1_xtraordnry_loss",
}

// Ferc1DBFSettings selects the raw FERC Form 1 DBF tables and years to
// convert into the relational archive, plus the reference year whose
// database layout defines the target schema.
type Ferc1DBFSettings struct {
	Years  []int    `yaml:"years"`
	Tables []string `yaml:"tables"`

	// RefYear is the year whose DBF layout is used as the schema reference.
	// Defaults to the most recent working year.
	RefYear int `yaml:"refyear"`

	// BadCols names columns known to be corrupt in the raw data, passed
	// through to the conversion untouched.
	BadCols []string `yaml:"bad_cols"`
}

// Validate checks the requested partitions and the reference year against
// the working set and normalizes the settings in place.
func (s *Ferc1DBFSettings) Validate() error {
	years, err := normalizePartition("ferc1_dbf", "years", s.Years, Ferc1WorkingYears)
	if err != nil {
		return err
	}
	tables, err := normalizePartition("ferc1_dbf", "tables", s.Tables, Ferc1DBFWorkingTables)
	if err != nil {
		return err
	}
	s.Years = years
	s.Tables = tables

	if s.RefYear == 0 {
		s.RefYear = maxYear(Ferc1WorkingYears)
	}
	if _, err := normalizePartition("ferc1_dbf", "refyear", []int{s.RefYear}, Ferc1WorkingYears); err != nil {
		return fmt.Errorf("reference year %d is outside the range of available FERC Form 1 data %v",
			s.RefYear, Ferc1WorkingYears)
	}
	return nil
}
