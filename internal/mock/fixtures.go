package mock

import "time"

type (
	obj  = map[string]any
	list = []any
)

// with returns a shallow copy of base with overrides applied.
func with(base, overrides obj) obj {
	out := make(obj, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func campaign() obj {
	return obj{
		"campaign_id": "camp_1a2b3c4d5e6f",
		"name":        "Example Campaign",
		"created_at":  now(),
		"client_id":   "client_123456",
		"status":      "draft",
	}
}

func emailAccount() obj {
	return obj{
		"email_account_id":  "ea_123456789",
		"from_name":         "John Doe",
		"from_email":        "john.doe@example.com",
		"status":            "active",
		"max_email_per_day": 100,
		"created_at":        now(),
	}
}

func lead() obj {
	return obj{
		"lead_id":    "lead_123456",
		"email":      "contact@example.com",
		"first_name": "John",
		"last_name":  "Smith",
		"status":     "active",
		"created_at": now(),
	}
}

func sequences() list {
	return list{
		obj{"id": "seq_1", "type": "email", "delay_hours": 0},
		obj{"id": "seq_2", "type": "email", "delay_hours": 24},
		obj{"id": "seq_3", "type": "email", "delay_hours": 72},
	}
}

const campaignExportCSV = `id,name,email,status,created_at
1,John Doe,john@example.com,active,2023-01-01T12:00:00Z
2,Jane Smith,jane@example.com,pending,2023-01-02T14:30:00Z
3,Bob Johnson,bob@example.com,inactive,2023-01-03T09:15:00Z
4,Alice Williams,alice@example.com,active,2023-01-04T16:45:00Z
5,Charlie Brown,charlie@example.com,pending,2023-01-05T10:20:00Z`

type fixture struct {
	message string
	data    func() any
}

// fixtures is keyed by endpoint value. Every call builds fresh payloads so
// handlers may modify them.
var fixtures = map[string]fixture{
	"createCampaign":         {"Campaign created successfully", func() any { return campaign() }},
	"updateCampaignSchedule": {"Campaign schedule updated successfully", func() any { return campaign() }},
	"updateCampaignSettings": {"Campaign settings updated successfully", func() any { return campaign() }},
	"getCampaignById":        {"Campaign fetched successfully", func() any { return campaign() }},
	"saveCampaignSequence": {"Campaign sequences saved successfully", func() any {
		return with(campaign(), obj{"sequences": sequences()})
	}},
	"listCampaigns": {"Campaigns fetched successfully", func() any {
		return obj{
			"campaigns": list{
				with(campaign(), obj{"name": "First Campaign"}),
				with(campaign(), obj{"name": "Second Campaign", "campaign_id": "camp_2a2b3c4d5e6f"}),
				with(campaign(), obj{"name": "Third Campaign", "campaign_id": "camp_3a2b3c4d5e6f"}),
			},
			"total": 3, "page": 1, "limit": 10,
		}
	}},
	"patchCampaignStatus": {"Campaign status updated successfully", func() any {
		return with(campaign(), obj{"status": "active"})
	}},
	"fetchCampaignSequenceById": {"Campaign sequences fetched successfully", func() any {
		return obj{"campaign_id": "camp_1a2b3c4d5e6f", "sequences": sequences()}
	}},
	"fetchCampaignsByLeadId": {"Lead campaigns fetched successfully", func() any {
		return obj{
			"lead_id": "lead_123456",
			"campaigns": list{
				with(campaign(), obj{"name": "First Campaign"}),
				with(campaign(), obj{"name": "Second Campaign", "campaign_id": "camp_2a2b3c4d5e6f"}),
			},
		}
	}},
	"deleteCampaign": {"Campaign deleted successfully", func() any {
		return obj{"campaign_id": "camp_1a2b3c4d5e6f", "deleted": true}
	}},

	"listEmailAccountsPerCampaign": {"Campaign email accounts fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"email_accounts": list{
				with(emailAccount(), obj{"from_email": "sales1@example.com"}),
				with(emailAccount(), obj{"from_email": "sales2@example.com", "email_account_id": "ea_987654321"}),
			},
		}
	}},
	"addEmailAccountToCampaign": {"Email account added to campaign successfully", func() any {
		return obj{"campaign_id": "camp_1a2b3c4d5e6f", "email_account_id": "ea_123456789", "associated": true}
	}},
	"removeEmailAccountFromCampaign": {"Email account removed from campaign successfully", func() any {
		return obj{"campaign_id": "camp_1a2b3c4d5e6f", "email_account_id": "ea_123456789", "removed": true}
	}},
	"fetchAllEmailAccounts": {"Email accounts fetched successfully", func() any {
		return obj{
			"email_accounts": list{
				with(emailAccount(), obj{"from_email": "sales1@example.com"}),
				with(emailAccount(), obj{"from_email": "sales2@example.com", "email_account_id": "ea_987654321"}),
				with(emailAccount(), obj{"from_email": "sales3@example.com", "email_account_id": "ea_555555555"}),
			},
			"total": 3, "offset": 0, "limit": 10,
		}
	}},
	"createEmailAccount":    {"Email account created successfully", func() any { return emailAccount() }},
	"updateEmailAccount":    {"Email account updated successfully", func() any { return emailAccount() }},
	"fetchEmailAccountById": {"Email account fetched successfully", func() any { return emailAccount() }},
	"addUpdateWarmupToEmailAccount": {"Email account warmup settings updated successfully", func() any {
		return obj{"email_account_id": "ea_123456789", "warmup_enabled": true, "total_warmup_per_day": 20, "daily_rampup": 5}
	}},
	"reconnectFailedEmailAccounts": {"Attempted to reconnect failed email accounts", func() any {
		return obj{"reconnected_accounts": 2, "failed_accounts": 1}
	}},
	"updateEmailAccountTag": {"Email account tag updated successfully", func() any {
		return obj{"email_account_id": "ea_123456789", "tag": "sales"}
	}},

	"getCampaignLeads": {"Campaign leads fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"leads": list{
				with(lead(), obj{"email": "lead1@example.com"}),
				with(lead(), obj{"email": "lead2@example.com", "lead_id": "lead_234567"}),
				with(lead(), obj{"email": "lead3@example.com", "lead_id": "lead_345678"}),
			},
			"total": 3, "page": 1, "limit": 10,
		}
	}},
	"getLeadCategories": {"Lead categories fetched successfully", func() any {
		return obj{"categories": list{
			obj{"id": "cat_1", "name": "Hot Lead"},
			obj{"id": "cat_2", "name": "Warm Lead"},
			obj{"id": "cat_3", "name": "Cold Lead"},
			obj{"id": "cat_4", "name": "Customer"},
			obj{"id": "cat_5", "name": "Not Interested"},
		}}
	}},
	"getLeadByEmail": {"Lead fetched successfully", func() any { return lead() }},
	"updateLeadInCampaign": {"Lead updated successfully", func() any {
		return obj{"lead_id": "lead_123456", "campaign_id": "camp_1a2b3c4d5e6f", "updated": true}
	}},
	"getLeadMessageHistory": {"Lead message history fetched successfully", func() any {
		return obj{
			"lead_id":     "lead_123456",
			"campaign_id": "camp_1a2b3c4d5e6f",
			"messages": list{
				obj{"id": "msg_1", "type": "email", "direction": "outbound", "subject": "Initial Outreach", "body": "Hello, I wanted to reach out...", "timestamp": "2023-01-01T10:00:00Z"},
				obj{"id": "msg_2", "type": "email", "direction": "inbound", "subject": "Re: Initial Outreach", "body": "Thanks for reaching out...", "timestamp": "2023-01-02T14:30:00Z"},
				obj{"id": "msg_3", "type": "email", "direction": "outbound", "subject": "Re: Initial Outreach", "body": "I'm glad you're interested...", "timestamp": "2023-01-03T09:15:00Z"},
			},
		}
	}},

	"fetchCampaignAnalyticsByDateRange": {"Campaign analytics fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"analytics": obj{
				"total_emails_sent": 1250,
				"open_rate":         0.42,
				"click_rate":        0.18,
				"reply_rate":        0.08,
				"bounce_rate":       0.02,
				"daily_stats": list{
					obj{"date": "2023-01-01", "emails_sent": 250, "opens": 110, "clicks": 45, "replies": 20},
					obj{"date": "2023-01-02", "emails_sent": 300, "opens": 135, "clicks": 60, "replies": 25},
					obj{"date": "2023-01-03", "emails_sent": 200, "opens": 80, "clicks": 30, "replies": 15},
					obj{"date": "2023-01-04", "emails_sent": 250, "opens": 100, "clicks": 40, "replies": 18},
					obj{"date": "2023-01-05", "emails_sent": 250, "opens": 110, "clicks": 50, "replies": 22},
				},
			},
		}
	}},
	"getCampaignSequenceAnalytics": {"Sequence analytics fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"sequence_analytics": list{
				obj{"sequence_id": "seq_1", "emails_sent": 500, "open_rate": 0.45, "click_rate": 0.20, "reply_rate": 0.10},
				obj{"sequence_id": "seq_2", "emails_sent": 400, "open_rate": 0.40, "click_rate": 0.18, "reply_rate": 0.08},
				obj{"sequence_id": "seq_3", "emails_sent": 350, "open_rate": 0.38, "click_rate": 0.15, "reply_rate": 0.06},
			},
		}
	}},
	"getCampaignStatistics": {"Campaign statistics fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"statistics": obj{
				"total_leads": 1500, "active_leads": 875, "completed_leads": 450, "paused_leads": 175,
				"emails_sent": 3250, "emails_opened": 1365, "clicks": 585, "replies": 260, "bounces": 65,
			},
		}
	}},
	"getCampaignTopLevelAnalytics": {"Campaign top level analytics fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"analytics": obj{
				"open_rate": 0.42, "click_rate": 0.18, "reply_rate": 0.08, "bounce_rate": 0.02, "conversion_rate": 0.05,
			},
		}
	}},
	"getCampaignAnalyticsByDate": {"Campaign top level analytics by date fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"start_date":  "2023-01-01",
			"end_date":    "2023-01-31",
			"analytics": obj{
				"open_rate": 0.42, "click_rate": 0.18, "reply_rate": 0.08, "bounce_rate": 0.02,
				"daily_metrics": list{
					obj{"date": "2023-01-01", "open_rate": 0.40, "click_rate": 0.15, "reply_rate": 0.07},
					obj{"date": "2023-01-02", "open_rate": 0.42, "click_rate": 0.18, "reply_rate": 0.08},
					obj{"date": "2023-01-03", "open_rate": 0.45, "click_rate": 0.20, "reply_rate": 0.09},
				},
			},
		}
	}},
	"getCampaignLeadStatistics": {"Campaign lead statistics fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"lead_statistics": obj{
				"total_leads":      1500,
				"status_breakdown": obj{"active": 875, "completed": 450, "paused": 175},
				"category_breakdown": obj{
					"Hot Lead": 320, "Warm Lead": 530, "Cold Lead": 400, "Customer": 150, "Not Interested": 100,
				},
			},
		}
	}},
	"getCampaignMailboxStatistics": {"Campaign mailbox statistics fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"mailbox_statistics": list{
				obj{
					"email_account_id": "ea_123456789", "from_email": "sales1@example.com",
					"emails_sent": 850, "emails_opened": 357, "clicks": 153, "replies": 68, "bounces": 17,
					"daily_sends": list{
						obj{"date": "2023-01-01", "sent": 150},
						obj{"date": "2023-01-02", "sent": 200},
						obj{"date": "2023-01-03", "sent": 180},
						obj{"date": "2023-01-04", "sent": 170},
						obj{"date": "2023-01-05", "sent": 150},
					},
				},
				obj{
					"email_account_id": "ea_987654321", "from_email": "sales2@example.com",
					"emails_sent": 650, "emails_opened": 273, "clicks": 117, "replies": 52, "bounces": 13,
					"daily_sends": list{
						obj{"date": "2023-01-01", "sent": 100},
						obj{"date": "2023-01-02", "sent": 150},
						obj{"date": "2023-01-03", "sent": 120},
						obj{"date": "2023-01-04", "sent": 130},
						obj{"date": "2023-01-05", "sent": 150},
					},
				},
			},
		}
	}},

	"getCampaignWebhooks": {"Campaign webhooks fetched successfully", func() any {
		return obj{
			"campaign_id": "camp_1a2b3c4d5e6f",
			"webhooks": list{
				obj{
					"id": "wh_123456", "name": "Lead Reply Notification",
					"url": "https://example.com/webhook/lead-reply", "events": list{"lead_reply"},
					"active": true, "created_at": "2023-01-01T10:00:00Z",
				},
				obj{
					"id": "wh_234567", "name": "Lead Status Change",
					"url": "https://example.com/webhook/status-change", "events": list{"lead_status_change"},
					"active": true, "created_at": "2023-01-02T14:30:00Z",
				},
			},
		}
	}},
}
