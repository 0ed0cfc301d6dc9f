package catalog

import "apiexplorer/internal/model"

func str(name string, required bool, desc string) model.Param {
	return model.Param{Name: name, Type: model.TypeString, Required: required, Description: desc}
}

func num(name string, required bool, desc string) model.Param {
	return model.Param{Name: name, Type: model.TypeNumber, Required: required, Description: desc}
}

var (
	campaignID     = str("campaign_id", true, "Campaign ID")
	emailAccountID = str("email_account_id", true, "Email account ID")
	leadID         = str("lead_id", true, "Lead ID")
)

func bundled() []Category {
	return []Category{
		{Name: "Campaign Management", Endpoints: []model.Endpoint{
			{
				Name: "Create Campaign", Value: "createCampaign", Method: model.MethodPost,
				Description: "Creates a new campaign.",
				Params: []model.Param{
					str("name", true, "Name of the campaign"),
					str("client_id", false, "Client ID (optional)"),
				},
				URL: "/api/v1/campaigns/create",
			},
			{
				Name: "Update Campaign Schedule", Value: "updateCampaignSchedule", Method: model.MethodPost,
				Description: "Updates the schedule of an existing campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/schedule",
			},
			{
				Name: "Update Campaign Settings", Value: "updateCampaignSettings", Method: model.MethodPost,
				Description: "Updates general campaign settings.",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/settings",
			},
			{
				Name: "Get Campaign By Id", Value: "getCampaignById", Method: model.MethodGet,
				Description: "Retrieves campaign details by ID.",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}",
			},
			{
				Name: "Save Campaign Sequence", Value: "saveCampaignSequence", Method: model.MethodPost,
				Description: "Saves the sequence for a campaign.",
				Params: []model.Param{
					campaignID,
					{Name: "sequences", Type: model.TypeArray, Required: true, Description: "Array of sequence steps"},
				},
				URL: "/api/v1/campaigns/{campaign_id}/sequences",
			},
			{
				Name: "List all Campaigns", Value: "listCampaigns", Method: model.MethodGet,
				Description: "Retrieves a list of all campaigns.",
				URL:         "/api/v1/campaigns",
			},
			{
				Name: "Patch campaign status", Value: "patchCampaignStatus", Method: model.MethodPost,
				Description: "Updates the status of a campaign.",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/status",
			},
			{
				Name: "Fetch Campaign Sequence By Campaign ID", Value: "fetchCampaignSequenceById", Method: model.MethodGet,
				Description: "Fetches the sequence of a campaign by its ID",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/sequences",
			},
			{
				Name: "Fetch all Campaigns Using Lead ID", Value: "fetchCampaignsByLeadId", Method: model.MethodGet,
				Description: "Fetches all campaigns a lead is in.",
				Params:      []model.Param{leadID},
				URL:         "/api/v1/leads/{lead_id}/campaigns",
			},
			{
				Name: "Export data from a campaign", Value: "exportCampaignData", Method: model.MethodGet,
				Description:  "Exports data from a campaign.",
				Params:       []model.Param{campaignID},
				URL:          "/api/v1/campaigns/{campaign_id}/export",
				ResponseType: model.ResponseCSV,
			},
			{
				Name: "Delete Campaign", Value: "deleteCampaign", Method: model.MethodDelete,
				Description: "Deletes a campaign.",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}",
			},
		}},
		{Name: "Email Account Management", Endpoints: []model.Endpoint{
			{
				Name: "List all email accounts per campaign", Value: "listEmailAccountsPerCampaign", Method: model.MethodGet,
				Description: "Retrieves all email accounts associated with a specific campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/email-accounts",
			},
			{
				Name: "Add Email Account to a Campaign", Value: "addEmailAccountToCampaign", Method: model.MethodPost,
				Description: "Associates an existing email account with a specified campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/email-accounts",
			},
			{
				Name: "Remove Email Account from a Campaign", Value: "removeEmailAccountFromCampaign", Method: model.MethodDelete,
				Description: "Disassociates an email account from a campaign",
				Params:      []model.Param{campaignID, str("email_account_id", true, "Email Account ID")},
				URL:         "/api/v1/campaigns/{campaign_id}/email-accounts/{email_account_id}",
			},
			{
				Name: "Fetch all email accounts associated to a user", Value: "fetchAllEmailAccounts", Method: model.MethodGet,
				Description: "Retrieves a list of all email accounts associated with the authenticated user",
				Params: []model.Param{
					num("offset", false, "Pagination offset"),
					num("limit", false, "Pagination limit"),
				},
				URL: "/api/v1/email-accounts",
			},
			{
				Name: "Create an Email Account", Value: "createEmailAccount", Method: model.MethodPost,
				Description: "Creates a new email account",
				Params: []model.Param{
					str("from_name", true, "Sender name"),
					str("from_email", true, "Sender email"),
					str("user_name", true, "Username"),
					str("password", true, "Password"),
					str("smtp_host", true, "SMTP Host"),
					num("smtp_port", true, "SMTP Port"),
					str("smtp_security", true, "SMTP Security (e.g., TLS, SSL)"),
					num("max_email_per_day", false, "Max emails per day"),
				},
				URL: "/api/v1/email-accounts/save",
			},
			{
				Name: "Update Email Account", Value: "updateEmailAccount", Method: model.MethodPost,
				Description: "Modifies the settings of an existing email account",
				Params: []model.Param{
					emailAccountID,
					num("max_email_per_day", false, "Max emails per day"),
					str("custom_tracking_url", false, "Custom tracking URL"),
					str("signature", false, "Email signature"),
				},
				URL: "/api/v1/email-accounts/{email_account_id}",
			},
			{
				Name: "Fetch Email Account By ID", Value: "fetchEmailAccountById", Method: model.MethodGet,
				Description: "Retrieves the details of a specific email account using its ID",
				Params:      []model.Param{str("account_id", true, "Account ID")},
				URL:         "/api/v1/email-accounts/{account_id}",
			},
			{
				Name: "Add/Update Warmup To Email Account", Value: "addUpdateWarmupToEmailAccount", Method: model.MethodPost,
				Description: "Adds or updates the warmup settings for an email account",
				Params: []model.Param{
					emailAccountID,
					{Name: "warmup_enabled", Type: model.TypeBoolean, Description: "Is warmup enabled?"},
					num("total_warmup_per_day", false, "Total warmup emails per day"),
					num("daily_rampup", false, "Daily rampup value"),
				},
				URL: "/api/v1/email-accounts/{email_account_id}/warmup",
			},
			{
				Name: "Reconnect failed email accounts", Value: "reconnectFailedEmailAccounts", Method: model.MethodPost,
				Description: "Attempts to reconnect email accounts that have previously failed",
				URL:         "/api/v1/email-accounts/reconnect",
			},
			{
				Name: "Update Email Account Tag", Value: "updateEmailAccountTag", Method: model.MethodPost,
				Description: "Updates the tag associated with an email account",
				Params:      []model.Param{emailAccountID, str("tag", true, "Tag to add/update")},
				URL:         "/api/v1/email-accounts/{email_account_id}/tag",
			},
		}},
		{Name: "Analytics", Endpoints: []model.Endpoint{
			{
				Name: "Fetch Campaign Analytics by Date range", Value: "fetchCampaignAnalyticsByDateRange", Method: model.MethodGet,
				Description: "Retrieves campaign statistics within a specified date range",
				Params: []model.Param{
					campaignID,
					str("start_date", true, "Start date (YYYY-MM-DD)"),
					str("end_date", true, "End date (YYYY-MM-DD)"),
				},
				URL: "/api/v1/campaigns/{campaign_id}/analytics-by-date",
			},
			{
				Name: "Get Campaign Sequence Analytics", Value: "getCampaignSequenceAnalytics", Method: model.MethodGet,
				Description: "Retrieves analytics specific to the sequence of a campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/sequence-analytics",
			},
			{
				Name: "Get Campaign Statistics", Value: "getCampaignStatistics", Method: model.MethodGet,
				Description: "Retrieves overall campaign statistics and performance metrics",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/statistics",
			},
			{
				Name: "Get Campaign Top-Level Analytics", Value: "getCampaignTopLevelAnalytics", Method: model.MethodGet,
				Description: "Retrieves high-level analytics for a campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/analytics",
			},
			{
				Name: "Get Campaign Analytics by Date", Value: "getCampaignAnalyticsByDate", Method: model.MethodGet,
				Description: "Retrieves campaign analytics broken down by date",
				Params: []model.Param{
					campaignID,
					str("start_date", false, "Start date (YYYY-MM-DD)"),
					str("end_date", false, "End date (YYYY-MM-DD)"),
				},
				URL: "/api/v1/campaigns/{campaign_id}/top-level-analytics-by-date",
			},
			{
				Name: "Get Campaign Lead Statistics", Value: "getCampaignLeadStatistics", Method: model.MethodGet,
				Description: "Retrieves statistics about leads in a campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/lead-statistics",
			},
			{
				Name: "Get Campaign Mailbox Statistics", Value: "getCampaignMailboxStatistics", Method: model.MethodGet,
				Description: "Retrieves statistics about email accounts used in a campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/mailbox-statistics",
			},
		}},
		{Name: "Lead Management", Endpoints: []model.Endpoint{
			{
				Name: "Get Campaign Leads", Value: "getCampaignLeads", Method: model.MethodGet,
				Description: "Retrieves all leads associated with a campaign",
				Params: []model.Param{
					campaignID,
					num("page", false, "Page number (for pagination)"),
					num("limit", false, "Number of leads per page"),
				},
				URL: "/api/v1/campaigns/{campaign_id}/leads",
			},
			{
				Name: "Get Lead Categories", Value: "getLeadCategories", Method: model.MethodGet,
				Description: "Retrieves all available lead categories",
				URL:         "/api/v1/leads/categories",
			},
			{
				Name: "Get Lead by Email", Value: "getLeadByEmail", Method: model.MethodGet,
				Description: "Retrieves a lead by their email address",
				Params:      []model.Param{str("email", true, "Lead email address")},
				URL:         "/api/v1/leads/email/{email}",
			},
			{
				Name: "Update Lead in Campaign", Value: "updateLeadInCampaign", Method: model.MethodPost,
				Description: "Updates a lead within a specific campaign",
				Params: []model.Param{
					campaignID,
					leadID,
					str("status", false, "Lead status"),
					str("category", false, "Lead category"),
				},
				URL: "/api/v1/campaigns/{campaign_id}/leads/{lead_id}",
			},
			{
				Name: "Get Lead Message History", Value: "getLeadMessageHistory", Method: model.MethodGet,
				Description: "Retrieves message history for a lead in a campaign",
				Params:      []model.Param{campaignID, leadID},
				URL:         "/api/v1/campaigns/{campaign_id}/leads/{lead_id}/message-history",
			},
		}},
		{Name: "Webhooks", Endpoints: []model.Endpoint{
			{
				Name: "Get Campaign Webhooks", Value: "getCampaignWebhooks", Method: model.MethodGet,
				Description: "Retrieves all webhooks configured for a campaign",
				Params:      []model.Param{campaignID},
				URL:         "/api/v1/campaigns/{campaign_id}/webhooks",
			},
		}},
	}
}
